package messaging

import "go-deck/midi"

// EventType identifies the source or destination of a bus event.
type EventType int

const (
	EventAnalogButton EventType = iota // edge from an analog-emulated input
	EventTouchscreenButton             // edge from a touchscreen component
	EventButton                        // outbound message produced by the button engine
	EventSystem                        // system-level requests
	eventTypeCount
)

// SystemMessage is carried by EventSystem events.
type SystemMessage int

const (
	SystemNone SystemMessage = iota
	SystemForceIORefresh
	SystemPresetChangeRequest
)

// Event is the single payload type routed through the dispatcher.
//
// For inbound edge events (EventAnalogButton, EventTouchscreenButton) Value
// holds state information only (0 = released, 1 = pressed). For outbound
// EventButton events the fields describe a complete MIDI message; SysEx
// carries the raw frame when Message is midi.MessageSysEx.
type Event struct {
	ComponentIndex int
	Channel        uint8
	Index          uint16
	Value          uint16
	Message        midi.MessageType
	System         SystemMessage
	SysEx          []byte
	ForcedRefresh  bool
}

// Dispatcher is a synchronous publish/subscribe hub. Listeners run in the
// caller's goroutine, in registration order; Notify never blocks on a
// subscriber. The engine assumes a single logical thread of control, so
// there is no locking here.
type Dispatcher struct {
	listeners [eventTypeCount][]func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Listen registers a callback for the given event type.
func (d *Dispatcher) Listen(t EventType, fn func(Event)) {
	if t < 0 || t >= eventTypeCount {
		return
	}
	d.listeners[t] = append(d.listeners[t], fn)
}

// Notify delivers an event to every listener registered for its type.
func (d *Dispatcher) Notify(t EventType, e Event) {
	if t < 0 || t >= eventTypeCount {
		return
	}
	for _, fn := range d.listeners[t] {
		fn(e)
	}
}
