package database

// Section identifies one column of per-index values in the store.
type Section int

const (
	// Per-button sections, indexed by input index.
	SectionButtonType Section = iota
	SectionButtonMessageType
	SectionButtonChannel
	SectionButtonMIDIID
	SectionButtonValue
	SectionButtonSysExLength
	SectionButtonSysExData0
	SectionButtonSysExData1
	SectionButtonSysExData2
	SectionButtonSysExData3
	SectionButtonSysExData4
	SectionButtonSysExData5
	SectionButtonSysExData6
	SectionButtonSaxKeyMap

	// Per-encoder sections, indexed by encoder index.
	SectionEncoderEnable

	// System settings, indexed by Setting.
	SectionSystemSettings

	// Fingering table sections, indexed by entry.
	SectionSaxFingeringMaskLo14
	SectionSaxFingeringMaskHi10Enable
	SectionSaxFingeringNote

	sectionCount
)

// SysExDataWords is the number of 14-bit words stored per button for custom
// SysEx payloads (7 words = 14 payload bytes).
const SysExDataWords = 7

// Setting indexes SectionSystemSettings.
type Setting int

const (
	SettingSaxChromaticEnable Setting = iota
	SettingSaxChromaticBaseNote
	SettingSaxChromaticTranspose
	SettingSaxChromaticInputInvert
	SettingGlobalMIDIChannel
	settingCount
)

// FingeringNoteUnset marks a fingering table entry with no note assigned.
const FingeringNoteUnset = 0xFFFF

// Store is the read/update surface the engine depends on. A false result
// means the value could not be read or written; callers keep their previous
// state and never retry.
type Store interface {
	Read(section Section, index int) (uint16, bool)
	Update(section Section, index int, value uint16) bool
}

// Sizes fixes the capacity of every section at construction time.
type Sizes struct {
	Buttons         int
	Encoders        int
	FingeringTable  int
}

// Database is the in-memory store implementation. All sections are
// allocated up front; there is no growth after construction.
type Database struct {
	sizes    Sizes
	sections [sectionCount][]uint16
}

// New creates a database with every value zeroed, except fingering notes
// which start unset.
func New(sizes Sizes) *Database {
	db := &Database{sizes: sizes}

	for s := Section(0); s < sectionCount; s++ {
		db.sections[s] = make([]uint16, db.sectionSize(s))
	}
	for i := range db.sections[SectionSaxFingeringNote] {
		db.sections[SectionSaxFingeringNote][i] = FingeringNoteUnset
	}

	return db
}

func (db *Database) sectionSize(s Section) int {
	switch s {
	case SectionEncoderEnable:
		return db.sizes.Encoders
	case SectionSystemSettings:
		return int(settingCount)
	case SectionSaxFingeringMaskLo14, SectionSaxFingeringMaskHi10Enable, SectionSaxFingeringNote:
		return db.sizes.FingeringTable
	default:
		return db.sizes.Buttons
	}
}

// Read returns the stored value, or false when the section or index is out
// of range.
func (db *Database) Read(section Section, index int) (uint16, bool) {
	if section < 0 || section >= sectionCount {
		return 0, false
	}
	values := db.sections[section]
	if index < 0 || index >= len(values) {
		return 0, false
	}
	return values[index], true
}

// Update stores a value, reporting false when the section or index is out
// of range.
func (db *Database) Update(section Section, index int, value uint16) bool {
	if section < 0 || section >= sectionCount {
		return false
	}
	values := db.sections[section]
	if index < 0 || index >= len(values) {
		return false
	}
	values[index] = value
	return true
}
