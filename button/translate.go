package button

import (
	"go-deck/database"
	"go-deck/messaging"
	"go-deck/midi"
)

// Custom SysEx frame limits. The stored payload is at most 14 bytes,
// framed by F0/F7 for a 16 byte maximum on the wire.
const (
	maxSysExFrameLen   = 16
	maxSysExPayloadLen = maxSysExFrameLen - 2
)

// sendMessage applies the per-kind policy for one emitted state and
// publishes the resulting events. state is the logical on/off to emit,
// which for latching inputs is the latch phase rather than the raw reading.
func (b *Buttons) sendMessage(index int, state bool, d *Descriptor) {
	send := true
	eventType := messaging.EventButton

	if state {
		switch d.Kind {
		case KindNote,
			KindControlChange,
			KindControlChangeReset,
			KindRealTimeClock,
			KindRealTimeStart,
			KindRealTimeContinue,
			KindRealTimeStop,
			KindRealTimeActiveSensing,
			KindRealTimeSystemReset,
			KindMMCPlay,
			KindMMCStop,
			KindMMCPause,
			KindMMCRecord,
			KindMMCPlayStop:
			// pass through unchanged

		case KindNoteLegato:
			// Monophonic last-note priority: turn off the previous note on
			// this channel before the new Note On, so exactly one note
			// sounds per channel.
			channel := d.Event.Channel & 0x0F
			newNote := uint8(d.Event.Index & 0x7F)

			b.legatoCount[channel]++

			if b.legatoCount[channel] > 1 {
				prevNote := b.legatoNote[channel]
				if prevNote != newNote {
					offEvent := d.Event
					offEvent.Index = uint16(prevNote)
					offEvent.Value = 0
					offEvent.Message = midi.MessageNoteOff
					b.bus.Notify(eventType, offEvent)
				}
			}

			b.legatoNote[channel] = newNote
			d.Event.Message = midi.MessageNoteOn

		case KindProgramChange:
			d.Event.Value = 0
			d.Event.Index = (d.Event.Index + uint16(b.program.Offset())) & 0x7F

		case KindProgramChangeInc:
			d.Event.Value = 0
			if !b.program.IncrementProgram(d.Event.Channel, 1) {
				send = false
			}
			d.Event.Index = uint16(b.program.Program(d.Event.Channel))

		case KindProgramChangeDec:
			d.Event.Value = 0
			if !b.program.DecrementProgram(d.Event.Channel, 1) {
				send = false
			}
			d.Event.Index = uint16(b.program.Program(d.Event.Channel))

		case KindMultiValIncResetNote:
			send = b.multiVal(index, d, incOverflow, true)

		case KindMultiValIncDecNote:
			send = b.multiVal(index, d, incEdge, true)

		case KindMultiValIncResetCC:
			send = b.multiVal(index, d, incOverflow, false)

		case KindMultiValIncDecCC:
			send = b.multiVal(index, d, incEdge, false)

		case KindNoteOffOnly:
			d.Event.Value = 0
			d.Event.Message = midi.MessageNoteOff

		case KindControlChange0Only:
			d.Event.Value = 0

		case KindBankSelectProgramChange:
			// 14-bit bank splits into CC#0 (MSB) and CC#32 (LSB), followed
			// by a Program Change from the identifier. Three events total;
			// the input's own event is suppressed.
			bank := d.Event.Value & 0x3FFF

			ccMSB := d.Event
			ccMSB.Message = midi.MessageControlChange
			ccMSB.Index = 0
			ccMSB.Value = (bank >> 7) & 0x7F
			b.bus.Notify(eventType, ccMSB)

			ccLSB := d.Event
			ccLSB.Message = midi.MessageControlChange
			ccLSB.Index = 32
			ccLSB.Value = bank & 0x7F
			b.bus.Notify(eventType, ccLSB)

			pc := d.Event
			pc.Message = midi.MessageProgramChange
			pc.Index &= 0x7F
			pc.Value = 0
			b.bus.Notify(eventType, pc)

			send = false

		case KindCustomSysEx:
			send = b.customSysEx(index, d)

		case KindProgramChangeOffsetInc:
			b.program.IncrementOffset(d.Event.Value)

		case KindProgramChangeOffsetDec:
			b.program.DecrementOffset(d.Event.Value)

		case KindPresetChange:
			eventType = messaging.EventSystem
			d.Event.System = messaging.SystemPresetChangeRequest

		case KindBPMInc:
			d.Event.Value = 0
			if !b.bpm.Increment(1) {
				send = false
			}
			d.Event.Index = b.bpm.Value()

		case KindBPMDec:
			d.Event.Value = 0
			if !b.bpm.Decrement(1) {
				send = false
			}
			d.Event.Index = b.bpm.Value()

		default:
			send = false
		}
	} else {
		switch d.Kind {
		case KindNote:
			d.Event.Value = 0
			d.Event.Message = midi.MessageNoteOff

		case KindNoteLegato:
			// Final release turns off the active note; earlier releases
			// are suppressed.
			channel := d.Event.Channel & 0x0F

			if b.legatoCount[channel] > 0 {
				b.legatoCount[channel]--
			}

			if b.legatoCount[channel] == 0 {
				d.Event.Index = uint16(b.legatoNote[channel])
				d.Event.Value = 0
				d.Event.Message = midi.MessageNoteOff
				b.legatoNote[channel] = 0
			} else {
				send = false
			}

		case KindControlChangeReset:
			d.Event.Value = 0

		case KindMMCRecord:
			d.Event.Message = midi.MessageMMCRecordStop

		case KindMMCPlayStop:
			d.Event.Message = midi.MessageMMCStop

		default:
			send = false
		}
	}

	if send {
		b.bus.Notify(eventType, d.Event)
	}
}

// multiVal advances the input's 7-bit running value and decides whether to
// emit. Nothing is sent when the value did not change. Note variants emit
// Note On for nonzero values and Note Off for zero.
func (b *Buttons) multiVal(index int, d *Descriptor, mode incDecMode, note bool) bool {
	newValue := increment7Bit(b.incDec[index], uint8(d.Event.Value&0x7F), mode)
	if newValue == b.incDec[index] {
		return false
	}

	if note {
		if newValue == 0 {
			d.Event.Message = midi.MessageNoteOff
		} else {
			d.Event.Message = midi.MessageNoteOn
		}
	}

	b.incDec[index] = newValue
	d.Event.Value = uint16(newValue)
	return true
}

// customSysEx assembles an F0..F7 frame from the stored 14-bit words, each
// split little-endian into two 7-bit bytes, with optional single-byte
// variable substitution. Returns false when the stored length suppresses
// the message.
func (b *Buttons) customSysEx(index int, d *Descriptor) bool {
	rawLen, ok := b.db.Read(database.SectionButtonSysExLength, index)
	if !ok {
		return false
	}

	payloadLen := int(rawLen)
	if payloadLen == 0 || payloadLen > maxSysExPayloadLen {
		return false
	}

	var payload [maxSysExPayloadLen]byte
	for word := 0; word < database.SysExDataWords; word++ {
		value, ok := b.db.Read(database.SectionButtonSysExData0+database.Section(word), index)
		if !ok {
			return false
		}
		payload[2*word] = byte(value & 0x7F)
		payload[2*word+1] = byte((value >> 7) & 0x7F)
	}

	frame := make([]byte, payloadLen+2)
	frame[0] = 0xF0
	copy(frame[1:], payload[:payloadLen])
	frame[payloadLen+1] = 0xF7

	// Variable substitution uses full-frame indexing. Position 0 is
	// reserved as disabled so a default config never corrupts the leading
	// F0; the trailing F7 is likewise protected.
	varPos := int(d.Event.Index & 0xFF)
	varValue := byte(d.Event.Value & 0x7F)
	if varPos != 0 && varPos < len(frame)-1 {
		frame[varPos] = varValue
	}

	d.Event.SysEx = frame
	d.Event.Message = midi.MessageSysEx
	return true
}
