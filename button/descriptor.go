package button

import (
	"go-deck/database"
	"go-deck/messaging"
	"go-deck/midi"
)

// Type is the physical behavior of an input.
type Type uint8

const (
	TypeMomentary Type = iota // event on press and release
	TypeLatching              // event between presses only
	typeAmount
)

// MessageKind selects the translation policy for an input. The order is
// the persisted wire order and must not change.
type MessageKind uint8

const (
	KindNote MessageKind = iota
	KindProgramChange
	KindControlChange
	KindControlChangeReset
	KindMMCStop
	KindMMCPlay
	KindMMCRecord
	KindMMCPause
	KindRealTimeClock
	KindRealTimeStart
	KindRealTimeContinue
	KindRealTimeStop
	KindRealTimeActiveSensing
	KindRealTimeSystemReset
	KindProgramChangeInc
	KindProgramChangeDec
	KindNone
	KindPresetChange
	KindMultiValIncResetNote
	KindMultiValIncDecNote
	KindMultiValIncResetCC
	KindMultiValIncDecCC
	KindNoteOffOnly
	KindControlChange0Only
	KindBankSelectProgramChange
	KindCustomSysEx
	KindProgramChangeOffsetInc
	KindProgramChangeOffsetDec
	KindBPMInc
	KindBPMDec
	KindMMCPlayStop
	KindNoteLegato
	kindAmount
)

// kindToMessage is the canonical outbound wire kind for each message kind,
// before any per-kind policy rewrites it.
var kindToMessage = [kindAmount]midi.MessageType{
	KindNote:                    midi.MessageNoteOn,
	KindProgramChange:           midi.MessageProgramChange,
	KindControlChange:           midi.MessageControlChange,
	KindControlChangeReset:      midi.MessageControlChange,
	KindMMCStop:                 midi.MessageMMCStop,
	KindMMCPlay:                 midi.MessageMMCPlay,
	KindMMCRecord:               midi.MessageMMCRecordStart,
	KindMMCPause:                midi.MessageMMCPause,
	KindRealTimeClock:           midi.MessageRealTimeClock,
	KindRealTimeStart:           midi.MessageRealTimeStart,
	KindRealTimeContinue:        midi.MessageRealTimeContinue,
	KindRealTimeStop:            midi.MessageRealTimeStop,
	KindRealTimeActiveSensing:   midi.MessageRealTimeActiveSensing,
	KindRealTimeSystemReset:     midi.MessageRealTimeSystemReset,
	KindProgramChangeInc:        midi.MessageProgramChange,
	KindProgramChangeDec:        midi.MessageProgramChange,
	KindNone:                    midi.MessageNone,
	KindPresetChange:            midi.MessageNone,
	KindMultiValIncResetNote:    midi.MessageNoteOn,
	KindMultiValIncDecNote:      midi.MessageNoteOn,
	KindMultiValIncResetCC:      midi.MessageControlChange,
	KindMultiValIncDecCC:        midi.MessageControlChange,
	KindNoteOffOnly:             midi.MessageNoteOff,
	KindControlChange0Only:      midi.MessageControlChange,
	KindBankSelectProgramChange: midi.MessageProgramChange,
	KindCustomSysEx:             midi.MessageSysEx,
	KindProgramChangeOffsetInc:  midi.MessageNone,
	KindProgramChangeOffsetDec:  midi.MessageNone,
	KindBPMInc:                  midi.MessageNone,
	KindBPMDec:                  midi.MessageNone,
	KindMMCPlayStop:             midi.MessageMMCPlay,
	KindNoteLegato:              midi.MessageNoteOn,
}

// Descriptor is the transient view of one input's configuration, filled
// from the store before every translation.
type Descriptor struct {
	Type  Type
	Kind  MessageKind
	Event messaging.Event
}

// fillDescriptor reads the input's configuration from the store. A failed
// read leaves the input untouched: the caller skips processing and the
// previous state survives.
func (b *Buttons) fillDescriptor(index int, d *Descriptor) bool {
	rawType, ok1 := b.db.Read(database.SectionButtonType, index)
	rawKind, ok2 := b.db.Read(database.SectionButtonMessageType, index)
	channel, ok3 := b.db.Read(database.SectionButtonChannel, index)
	midiID, ok4 := b.db.Read(database.SectionButtonMIDIID, index)
	value, ok5 := b.db.Read(database.SectionButtonValue, index)

	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return false
	}

	d.Type = Type(rawType)
	if d.Type >= typeAmount {
		d.Type = TypeMomentary
	}
	d.Kind = MessageKind(rawKind)
	if d.Kind >= kindAmount {
		d.Kind = KindNone
	}

	d.Event = messaging.Event{
		ComponentIndex: index,
		Channel:        uint8(channel),
		Index:          midiID,
		Value:          value,
		Message:        kindToMessage[d.Kind],
	}

	return true
}
