// Package button turns raw input edges into sequenced MIDI bus events.
// It owns all transient input state: pressed/latching bitmaps, legato
// reference counts, multi-value counters and the register-chromatic note
// tracker.
package button

import (
	"errors"
	"fmt"

	"go-deck/database"
	"go-deck/global"
	"go-deck/messaging"
)

// Input groups. Indices from different groups are offset into one flat
// range before state lookup.
const (
	GroupDigital = iota
	GroupAnalog
	GroupTouchscreen
)

// ErrIndexOutOfRange reports an input index outside the configured layout.
var ErrIndexOutOfRange = errors.New("button: input index out of range")

// maxBufferedReadings is how many buffered hardware readings one update
// cycle consumes per input.
const maxBufferedReadings = 16

// Layout fixes the number of inputs per group.
type Layout struct {
	DigitalInputs     int
	AnalogInputs      int
	TouchscreenInputs int
}

// Size returns the total number of inputs across all groups.
func (l Layout) Size() int {
	return l.DigitalInputs + l.AnalogInputs + l.TouchscreenInputs
}

// StartIndex returns the base offset of a group in the flat input range.
func (l Layout) StartIndex(group int) int {
	switch group {
	case GroupAnalog:
		return l.DigitalInputs
	case GroupTouchscreen:
		return l.DigitalInputs + l.AnalogInputs
	default:
		return 0
	}
}

// Hardware supplies buffered raw readings per digital input. States packs
// up to 16 readings with the newest in the lowest bit. It also maps a
// button index to the co-located encoder index so reassigned inputs can be
// skipped.
type Hardware interface {
	State(index int) (readings uint8, states uint16, ok bool)
	ButtonToEncoderIndex(index int) int
}

// Filter sits between raw readings and edge detection. Returning false
// drops the reading. Debouncing lives behind this interface, outside the
// engine.
type Filter interface {
	Filter(index int, state bool) bool
}

// Config wires the engine's collaborators. Bus, Store, Program and BPM are
// required; Hardware and Filter are only needed when Update/UpdateAll drive
// the engine. Chromatic enables the register-chromatic strategy (a runtime
// store setting additionally gates it per edge).
type Config struct {
	Layout    Layout
	Hardware  Hardware
	Filter    Filter
	Store     database.Store
	Bus       *messaging.Dispatcher
	Program   *global.MidiProgram
	BPM       *global.BPM
	Chromatic bool
}

// Buttons is the input-processing engine.
type Buttons struct {
	layout  Layout
	hw      Hardware
	filter  Filter
	db      database.Store
	bus     *messaging.Dispatcher
	program *global.MidiProgram
	bpm     *global.BPM

	pressed  *bitSet
	latching *bitSet

	legatoCount [16]int
	legatoNote  [16]uint8

	incDec []uint8

	chromatic *chromatic
}

// New builds the engine, resets all transient state and registers the bus
// listeners that drive it: analog/touchscreen edges and the force-refresh
// system event.
func New(cfg Config) (*Buttons, error) {
	if cfg.Store == nil || cfg.Bus == nil || cfg.Program == nil || cfg.BPM == nil {
		return nil, errors.New("button: store, bus, program and bpm are required")
	}
	if cfg.Layout.Size() <= 0 {
		return nil, errors.New("button: layout has no inputs")
	}

	b := &Buttons{
		layout:  cfg.Layout,
		hw:      cfg.Hardware,
		filter:  cfg.Filter,
		db:      cfg.Store,
		bus:     cfg.Bus,
		program: cfg.Program,
		bpm:     cfg.BPM,

		pressed:  newBitSet(cfg.Layout.Size()),
		latching: newBitSet(cfg.Layout.Size()),
		incDec:   make([]uint8, cfg.Layout.Size()),
	}

	if cfg.Chromatic {
		c, err := newChromatic(cfg.Layout, cfg.Store, cfg.Bus)
		if err != nil {
			return nil, fmt.Errorf("button: %w", err)
		}
		b.chromatic = c
	}

	cfg.Bus.Listen(messaging.EventAnalogButton, func(e messaging.Event) {
		index := e.ComponentIndex + b.layout.StartIndex(GroupAnalog)

		var d Descriptor
		if !b.fillDescriptor(index, &d) {
			return
		}

		if !e.ForcedRefresh {
			// event value carries state information only
			b.processButton(index, e.Value != 0, &d)
			return
		}

		if d.Type == TypeLatching {
			b.sendMessage(index, b.latching.get(index), &d)
		} else {
			b.sendMessage(index, b.pressed.get(index), &d)
		}
	})

	cfg.Bus.Listen(messaging.EventTouchscreenButton, func(e messaging.Event) {
		index := e.ComponentIndex + b.layout.StartIndex(GroupTouchscreen)

		var d Descriptor
		if !b.fillDescriptor(index, &d) {
			return
		}

		b.processButton(index, e.Value != 0, &d)
	})

	cfg.Bus.Listen(messaging.EventSystem, func(e messaging.Event) {
		if e.System == messaging.SystemForceIORefresh {
			b.UpdateAll(true)
		}
	})

	for i := 0; i < b.layout.Size(); i++ {
		b.Reset(i)
	}

	return b, nil
}

// State reports the last committed pressed state for an input.
func (b *Buttons) State(index int) bool {
	if index < 0 || index >= b.layout.Size() {
		return false
	}
	return b.pressed.get(index)
}

// LatchingState reports the emitted on/off phase of a latching input.
func (b *Buttons) LatchingState(index int) bool {
	if index < 0 || index >= b.layout.Size() {
		return false
	}
	return b.latching.get(index)
}

// Reset clears both state bits for an input. Called at init and whenever an
// input's type or message kind is redefined so stale state never survives.
func (b *Buttons) Reset(index int) {
	if index < 0 || index >= b.layout.Size() {
		return
	}
	b.pressed.set(index, false)
	b.latching.set(index, false)
}

// Process handles a single confirmed reading for an input, validating the
// index at the engine boundary.
func (b *Buttons) Process(index int, reading bool) error {
	if index < 0 || index >= b.layout.Size() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	var d Descriptor
	if !b.fillDescriptor(index, &d) {
		return nil
	}

	b.processButton(index, reading, &d)
	return nil
}

// Update samples buffered hardware readings for one digital input and runs
// them through the filter and edge detection, oldest first. Under forced
// refresh it re-emits the last known state without filtering.
func (b *Buttons) Update(index int, forceRefresh bool) {
	if index < 0 || index >= b.layout.DigitalInputs {
		return
	}

	var d Descriptor

	if forceRefresh {
		if !b.fillDescriptor(index, &d) {
			return
		}
		if d.Type == TypeLatching {
			b.sendMessage(index, b.latching.get(index), &d)
		} else {
			b.sendMessage(index, b.pressed.get(index), &d)
		}
		return
	}

	readings, states, ok := b.hardwareState(index)
	if !ok {
		return
	}

	if !b.fillDescriptor(index, &d) {
		return
	}

	for r := uint8(0); r < readings; r++ {
		// newest sample is bit 0; process oldest first
		state := (states >> (readings - 1 - r)) & 0x01

		if b.filter != nil && !b.filter.Filter(index, state != 0) {
			continue
		}

		b.processButton(index, state != 0, &d)
	}
}

// UpdateAll runs Update over every digital input.
func (b *Buttons) UpdateAll(forceRefresh bool) {
	for i := 0; i < b.layout.DigitalInputs; i++ {
		b.Update(i, forceRefresh)
	}
}

// hardwareState reads buffered states for an input, suppressing inputs
// whose co-located encoder is enabled.
func (b *Buttons) hardwareState(index int) (uint8, uint16, bool) {
	if b.hw == nil {
		return 0, 0, false
	}

	if enabled, ok := b.db.Read(database.SectionEncoderEnable, b.hw.ButtonToEncoderIndex(index)); ok && enabled != 0 {
		return 0, 0, false
	}

	readings, states, ok := b.hw.State(index)
	if !ok {
		return 0, 0, false
	}
	if readings > maxBufferedReadings {
		readings = maxBufferedReadings
	}
	return readings, states, true
}

// processButton commits a change of state and dispatches it. Edges only:
// a reading equal to the last committed state is a no-op.
func (b *Buttons) processButton(index int, reading bool, d *Descriptor) {
	if reading == b.pressed.get(index) {
		return
	}

	b.pressed.set(index, reading)

	// The register-chromatic strategy gets first refusal for digital
	// inputs and fully replaces normal translation.
	if b.chromatic != nil && index < b.layout.DigitalInputs {
		if enabled, ok := b.db.Read(database.SectionSystemSettings, int(database.SettingSaxChromaticEnable)); ok && enabled != 0 {
			b.chromatic.process(b.pressed.get)
			return
		}
	}

	if d.Kind == KindNone {
		return
	}

	send := true

	// NOTE_LEGATO always acts as momentary, on both press and release.
	if d.Type == TypeLatching && d.Kind != KindNoteLegato {
		if !reading {
			// release edges of latching inputs are suppressed
			send = false
		} else if b.latching.get(index) {
			b.latching.set(index, false)
			reading = false
		} else {
			b.latching.set(index, true)
			reading = true
		}
	}

	if send {
		b.sendMessage(index, reading, d)
	}
}

// CaptureFingeringEntry snapshots the current pressed-key mask into a
// fingering table entry. Only valid when the chromatic strategy is enabled.
func (b *Buttons) CaptureFingeringEntry(entry int, note uint16) error {
	if b.chromatic == nil {
		return errors.New("button: register-chromatic mode not enabled")
	}
	return b.chromatic.capture(entry, note, b.pressed.get)
}
