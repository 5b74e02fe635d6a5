package button

import (
	"go-deck/database"
	"go-deck/sysconfig"
)

// Protocol sections for the buttons block. These are wire values and map
// one to one onto the store's per-button sections.
const (
	SysSectionType = iota
	SysSectionMessageType
	SysSectionChannel
	SysSectionMIDIID
	SysSectionValue
	SysSectionSysExLength
	SysSectionSysExData0
	// SysExData1-6 follow SysExData0
	SysSectionSaxKeyMap = SysSectionSysExData0 + database.SysExDataWords
	sysSectionCount     = SysSectionSaxKeyMap + 1
)

// RegisterSysConfig exposes the per-button configuration over the
// system-wide configuration protocol. Writing an input's type or message
// kind resets its transient state so no stale latch or press survives the
// redefinition.
func (b *Buttons) RegisterSysConfig(h *sysconfig.Handler) {
	h.Register(sysconfig.BlockButtons,
		func(section, index int) (uint16, sysconfig.Status) {
			dbSection, ok := sysToDBSection(section)
			if !ok {
				return 0, sysconfig.StatusErrorRead
			}
			value, ok := b.db.Read(dbSection, index)
			if !ok {
				return 0, sysconfig.StatusErrorRead
			}
			return value, sysconfig.StatusAck
		},
		func(section, index int, value uint16) sysconfig.Status {
			dbSection, ok := sysToDBSection(section)
			if !ok {
				return sysconfig.StatusErrorWrite
			}
			if !b.db.Update(dbSection, index, value) {
				return sysconfig.StatusErrorWrite
			}
			if section == SysSectionType || section == SysSectionMessageType {
				b.Reset(index)
			}
			return sysconfig.StatusAck
		})
}

func sysToDBSection(section int) (database.Section, bool) {
	if section < 0 || section >= sysSectionCount {
		return 0, false
	}
	// the protocol section order mirrors the store's button sections
	return database.SectionButtonType + database.Section(section), true
}
