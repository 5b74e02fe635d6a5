package button

import (
	"errors"
	"fmt"
	"math/bits"

	"go-deck/database"
	"go-deck/messaging"
	"go-deck/midi"
)

// Fingering table protocol constants. Entry masks are stored split: the low
// 14 bits in one section, the remaining high bits plus an enable flag in
// another. The 14-bit split is a fixed protocol constant.
const (
	FingeringKeys         = 24
	FingeringTableEntries = 32

	fingeringLoBits = 14
	fingeringHiBits = FingeringKeys - fingeringLoBits

	fingeringHiMask     = (1 << fingeringHiBits) - 1
	fingeringEnableMask = 1 << fingeringHiBits
)

// ErrBadEntryIndex reports a fingering table entry index outside the table.
var ErrBadEntryIndex = errors.New("button: fingering table entry out of range")

// chromatic is the register-chromatic strategy: it collapses the digital
// input bank into a single monophonic note stream, replacing normal
// translation for those inputs.
type chromatic struct {
	layout Layout
	db     database.Store
	bus    *messaging.Dispatcher

	noteOn     bool
	activeNote uint8
}

func newChromatic(layout Layout, db database.Store, bus *messaging.Dispatcher) (*chromatic, error) {
	// Guard the mask split: the high word must hold at least one mask bit
	// plus the enable flag inside 16 bits.
	if fingeringHiBits < 1 || fingeringHiBits > 15 {
		return nil, fmt.Errorf("fingering key count %d incompatible with %d-bit mask split", FingeringKeys, fingeringLoBits)
	}
	if layout.DigitalInputs <= 0 {
		return nil, errors.New("register-chromatic mode needs digital inputs")
	}

	return &chromatic{
		layout: layout,
		db:     db,
		bus:    bus,
	}, nil
}

// channel returns the zero-based MIDI channel for chromatic output. The
// global channel setting is 1-16; anything else falls back to channel 1.
func (c *chromatic) channel() uint8 {
	raw, _ := c.db.Read(database.SectionSystemSettings, int(database.SettingGlobalMIDIChannel))
	if raw >= 1 && raw <= 16 {
		return uint8(raw - 1)
	}
	return 0
}

// keyCount returns how many digital inputs participate in fingering masks.
func (c *chromatic) keyCount() int {
	if c.layout.DigitalInputs < FingeringKeys {
		return c.layout.DigitalInputs
	}
	return FingeringKeys
}

func (c *chromatic) invertInputs() bool {
	v, _ := c.db.Read(database.SectionSystemSettings, int(database.SettingSaxChromaticInputInvert))
	return v != 0
}

// currentMask packs the pressed state of the first keyCount digital inputs,
// optionally inverted, key 0 in bit 0.
func (c *chromatic) currentMask(pressed func(int) bool, invert bool) uint32 {
	var mask uint32
	for i := 0; i < c.keyCount(); i++ {
		state := pressed(i)
		if invert {
			state = !state
		}
		if state {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// process re-evaluates the whole digital bank after any edge and emits the
// note-off/note-on transition for the new target note, if any. Table mode
// is in effect as soon as any fingering entry is enabled; otherwise the
// legacy highest-key priority rule applies.
func (c *chromatic) process(pressed func(int) bool) {
	transposeRaw, _ := c.db.Read(database.SectionSystemSettings, int(database.SettingSaxChromaticTranspose))
	// stored 0-48, midpoint 24 = no transpose
	transpose := int(transposeRaw) - 24

	invert := c.invertInputs()
	currentMask := c.currentMask(pressed, invert)

	anyEnabled := false
	hasMatch := false
	bestScore := -1
	bestNote := uint8(0)

	for entry := 0; entry < FingeringTableEntries; entry++ {
		hiEn, ok := c.db.Read(database.SectionSaxFingeringMaskHi10Enable, entry)
		if !ok || hiEn&fingeringEnableMask == 0 {
			continue
		}

		anyEnabled = true

		lo14, _ := c.db.Read(database.SectionSaxFingeringMaskLo14, entry)
		mask := uint32(lo14&0x3FFF) | uint32(hiEn&fingeringHiMask)<<fingeringLoBits

		// ignore bits outside the active key count
		mask &= (1 << uint(c.keyCount())) - 1

		if mask&currentMask != mask {
			continue
		}

		// strict greater-than: ties keep the earliest-scanned entry
		score := bits.OnesCount32(mask)
		if score > bestScore {
			noteWide, ok := c.db.Read(database.SectionSaxFingeringNote, entry)
			if !ok || noteWide > 127 {
				continue
			}
			bestScore = score
			bestNote = uint8(noteWide)
			hasMatch = true
		}
	}

	if anyEnabled {
		// table mode: the note is driven purely by the matched fingering
		if !hasMatch || currentMask == 0 {
			c.allOff()
			return
		}
		c.transition(clampNote(int(bestNote) + transpose))
		return
	}

	// Legacy mode: highest pressed digital index wins, deterministically.
	activeKey := -1
	for i := c.layout.DigitalInputs - 1; i >= 0; i-- {
		state := pressed(i)
		if invert {
			state = !state
		}
		if state {
			activeKey = i
			break
		}
	}

	if activeKey < 0 {
		c.allOff()
		return
	}

	mappedKey := activeKey
	if raw, ok := c.db.Read(database.SectionButtonSaxKeyMap, activeKey); ok && raw != 0 {
		mappedKey = int(raw) - 1
		// out-of-range remap falls back to identity
		if mappedKey >= c.layout.DigitalInputs {
			mappedKey = activeKey
		}
	}

	base, _ := c.db.Read(database.SectionSystemSettings, int(database.SettingSaxChromaticBaseNote))
	c.transition(clampNote(int(base) + mappedKey + transpose))
}

// transition moves the monophonic stream to newNote: no-op when unchanged,
// otherwise note-off for the old note (if any) followed by note-on.
func (c *chromatic) transition(newNote uint8) {
	if c.noteOn && c.activeNote == newNote {
		return
	}

	channel := c.channel()

	if c.noteOn {
		c.notify(midi.MessageNoteOff, channel, c.activeNote, 0)
	}

	c.notify(midi.MessageNoteOn, channel, newNote, 127)
	c.activeNote = newNote
	c.noteOn = true
}

// allOff silences the sounding note, if any.
func (c *chromatic) allOff() {
	if !c.noteOn {
		return
	}
	c.notify(midi.MessageNoteOff, c.channel(), c.activeNote, 0)
	c.noteOn = false
}

func (c *chromatic) notify(msg midi.MessageType, channel, note, velocity uint8) {
	c.bus.Notify(messaging.EventButton, messaging.Event{
		ComponentIndex: 0,
		Channel:        channel,
		Index:          uint16(note),
		Value:          uint16(velocity),
		Message:        msg,
	})
}

// capture snapshots the current pressed-key mask into a table entry,
// setting its enable flag, and stores the note when it is in range. This is
// the only mutator of table entries.
func (c *chromatic) capture(entry int, note uint16, pressed func(int) bool) error {
	if entry < 0 || entry >= FingeringTableEntries {
		return fmt.Errorf("%w: %d", ErrBadEntryIndex, entry)
	}

	currentMask := c.currentMask(pressed, c.invertInputs())

	lo14 := uint16(currentMask & 0x3FFF)
	hiEn := uint16(currentMask>>fingeringLoBits)&fingeringHiMask | fingeringEnableMask

	ok := c.db.Update(database.SectionSaxFingeringMaskLo14, entry, lo14)
	ok = c.db.Update(database.SectionSaxFingeringMaskHi10Enable, entry, hiEn) && ok

	if note <= 127 {
		ok = c.db.Update(database.SectionSaxFingeringNote, entry, note) && ok
	}

	if !ok {
		return errors.New("button: fingering table write failed")
	}
	return nil
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
