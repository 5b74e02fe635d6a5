package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// ButtonReading maps a note event from an external MIDI keyboard onto a
// virtual button edge.
type ButtonReading struct {
	Index   int
	Pressed bool
}

// ListenButtons opens the named input port and translates Note On/Off into
// button readings: note baseNote maps to index 0, baseNote+1 to index 1 and
// so on, up to count inputs. Notes outside that window are ignored. The
// returned stop function closes the listener.
func ListenButtons(portName string, baseNote uint8, count int, push func(ButtonReading)) (func(), error) {
	port := findInPort(portName)
	if port == nil {
		return nil, fmt.Errorf("input port not found: %s", portName)
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		var channel, note, velocity uint8

		switch {
		case msg.GetNoteOn(&channel, &note, &velocity):
			if index, ok := noteIndex(note, baseNote, count); ok {
				// velocity 0 note-on is a release by convention
				push(ButtonReading{Index: index, Pressed: velocity > 0})
			}
		case msg.GetNoteOff(&channel, &note, &velocity):
			if index, ok := noteIndex(note, baseNote, count); ok {
				push(ButtonReading{Index: index, Pressed: false})
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", port.String(), err)
	}

	return stop, nil
}

func noteIndex(note, baseNote uint8, count int) (int, bool) {
	if note < baseNote {
		return 0, false
	}
	index := int(note - baseNote)
	if index >= count {
		return 0, false
	}
	return index, true
}
