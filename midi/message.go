package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// MessageType is the outbound wire kind attached to bus events. MessageNone
// marks events that carry engine state (tempo, program offset, preset
// requests) but produce no MIDI bytes.
type MessageType uint8

const (
	MessageNone MessageType = iota
	MessageNoteOn
	MessageNoteOff
	MessageControlChange
	MessageProgramChange
	MessageSysEx
	MessageMMCPlay
	MessageMMCStop
	MessageMMCPause
	MessageMMCRecordStart
	MessageMMCRecordStop
	MessageRealTimeClock
	MessageRealTimeStart
	MessageRealTimeContinue
	MessageRealTimeStop
	MessageRealTimeActiveSensing
	MessageRealTimeSystemReset
)

var messageNames = map[MessageType]string{
	MessageNone:                  "none",
	MessageNoteOn:                "note on",
	MessageNoteOff:               "note off",
	MessageControlChange:         "cc",
	MessageProgramChange:         "program change",
	MessageSysEx:                 "sysex",
	MessageMMCPlay:               "mmc play",
	MessageMMCStop:               "mmc stop",
	MessageMMCPause:              "mmc pause",
	MessageMMCRecordStart:        "mmc record start",
	MessageMMCRecordStop:         "mmc record stop",
	MessageRealTimeClock:         "rt clock",
	MessageRealTimeStart:         "rt start",
	MessageRealTimeContinue:      "rt continue",
	MessageRealTimeStop:          "rt stop",
	MessageRealTimeActiveSensing: "rt active sensing",
	MessageRealTimeSystemReset:   "rt reset",
}

func (t MessageType) String() string {
	if name, ok := messageNames[t]; ok {
		return name
	}
	return "unknown"
}

// MMC command bytes (MIDI Machine Control, SysEx-framed).
const (
	mmcStop        = 0x01
	mmcPlay        = 0x02
	mmcRecordStart = 0x06
	mmcRecordStop  = 0x07
	mmcPause       = 0x09
)

// mmc builds an MMC frame payload for the all-devices ID (0x7F).
// Full frame on the wire: F0 7F 7F 06 <cmd> F7.
func mmc(cmd byte) gomidi.Message {
	return gomidi.SysEx([]byte{0x7F, 0x7F, 0x06, cmd})
}

// Encode converts an outbound event into a wire message. ok is false for
// MessageNone and for malformed SysEx frames.
func Encode(t MessageType, channel uint8, index, value uint16, sysEx []byte) (gomidi.Message, bool) {
	ch := channel & 0x0F
	key := uint8(index & 0x7F)
	val := uint8(value & 0x7F)

	switch t {
	case MessageNoteOn:
		return gomidi.NoteOn(ch, key, val), true
	case MessageNoteOff:
		return gomidi.NoteOff(ch, key), true
	case MessageControlChange:
		return gomidi.ControlChange(ch, key, val), true
	case MessageProgramChange:
		return gomidi.ProgramChange(ch, key), true
	case MessageSysEx:
		// sysEx holds the full frame; gomidi adds F0/F7 itself.
		if len(sysEx) < 2 || sysEx[0] != 0xF0 || sysEx[len(sysEx)-1] != 0xF7 {
			return nil, false
		}
		return gomidi.SysEx(sysEx[1 : len(sysEx)-1]), true
	case MessageMMCPlay:
		return mmc(mmcPlay), true
	case MessageMMCStop:
		return mmc(mmcStop), true
	case MessageMMCPause:
		return mmc(mmcPause), true
	case MessageMMCRecordStart:
		return mmc(mmcRecordStart), true
	case MessageMMCRecordStop:
		return mmc(mmcRecordStop), true
	case MessageRealTimeClock:
		return gomidi.TimingClock(), true
	case MessageRealTimeStart:
		return gomidi.Start(), true
	case MessageRealTimeContinue:
		return gomidi.Continue(), true
	case MessageRealTimeStop:
		return gomidi.Stop(), true
	case MessageRealTimeActiveSensing:
		return gomidi.Activesense(), true
	case MessageRealTimeSystemReset:
		return gomidi.Reset(), true
	}

	return nil, false
}
