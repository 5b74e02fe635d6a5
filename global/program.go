// Package global holds the shared counters the button engine mutates:
// per-channel MIDI program numbers, a global program offset and the tempo.
// They are plain handles passed into the engine at construction so tests
// can substitute fresh instances.
package global

const maxProgram = 127

// MidiProgram tracks the current program per MIDI channel plus a global
// offset applied to direct program change messages.
type MidiProgram struct {
	program [16]uint8
	offset  uint8
}

func NewMidiProgram() *MidiProgram {
	return &MidiProgram{}
}

// Program returns the current program for a channel.
func (p *MidiProgram) Program(channel uint8) uint8 {
	return p.program[channel&0x0F]
}

// IncrementProgram raises the channel program by delta, clamped at 127.
// Returns false when already at the boundary.
func (p *MidiProgram) IncrementProgram(channel uint8, delta uint8) bool {
	ch := channel & 0x0F
	if p.program[ch] >= maxProgram {
		return false
	}
	if int(p.program[ch])+int(delta) > maxProgram {
		p.program[ch] = maxProgram
	} else {
		p.program[ch] += delta
	}
	return true
}

// DecrementProgram lowers the channel program by delta, clamped at 0.
// Returns false when already at the boundary.
func (p *MidiProgram) DecrementProgram(channel uint8, delta uint8) bool {
	ch := channel & 0x0F
	if p.program[ch] == 0 {
		return false
	}
	if delta > p.program[ch] {
		p.program[ch] = 0
	} else {
		p.program[ch] -= delta
	}
	return true
}

// Offset returns the global program offset (0-127).
func (p *MidiProgram) Offset() uint8 {
	return p.offset
}

// IncrementOffset adds amount to the offset, wrapping within 7 bits.
func (p *MidiProgram) IncrementOffset(amount uint16) {
	p.offset = uint8((uint16(p.offset) + amount) & 0x7F)
}

// DecrementOffset subtracts amount from the offset, wrapping within 7 bits.
func (p *MidiProgram) DecrementOffset(amount uint16) {
	p.offset = uint8((uint16(p.offset) + 128 - (amount & 0x7F)) & 0x7F)
}
