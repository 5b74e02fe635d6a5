// Package hardware provides software stand-ins for the board layer: a
// virtual button bank fed by the monitor UI or an external MIDI keyboard.
// Real debouncing hardware sits behind the same interfaces.
package hardware

// Virtual is an in-memory button bank implementing the engine's hardware
// interface. Readings pushed since the last sample are buffered per input,
// newest in the lowest bit, up to 16 deep.
type Virtual struct {
	buffers []readingBuffer
	current []bool
}

type readingBuffer struct {
	states uint16
	count  uint8
}

// NewVirtual creates a bank with the given number of digital inputs.
func NewVirtual(inputs int) *Virtual {
	return &Virtual{
		buffers: make([]readingBuffer, inputs),
		current: make([]bool, inputs),
	}
}

// Push records a new reading for an input. Older readings shift toward the
// high bits; once the buffer is full the oldest reading is dropped.
func (v *Virtual) Push(index int, pressed bool) {
	if index < 0 || index >= len(v.buffers) {
		return
	}

	buf := &v.buffers[index]
	buf.states <<= 1
	if pressed {
		buf.states |= 1
	}
	if buf.count < 16 {
		buf.count++
	}
	v.current[index] = pressed
}

// Toggle flips an input's reading and returns the new state.
func (v *Virtual) Toggle(index int) bool {
	if index < 0 || index >= len(v.current) {
		return false
	}
	next := !v.current[index]
	v.Push(index, next)
	return next
}

// Reading reports the most recently pushed state for an input.
func (v *Virtual) Reading(index int) bool {
	if index < 0 || index >= len(v.current) {
		return false
	}
	return v.current[index]
}

// State drains the buffered readings for an input. ok is false when no
// readings arrived since the last sample.
func (v *Virtual) State(index int) (uint8, uint16, bool) {
	if index < 0 || index >= len(v.buffers) {
		return 0, 0, false
	}

	buf := &v.buffers[index]
	if buf.count == 0 {
		return 0, 0, false
	}

	readings, states := buf.count, buf.states
	buf.count = 0
	buf.states = 0
	return readings, states, true
}

// ButtonToEncoderIndex maps a button to its co-located encoder. The virtual
// bank pairs two buttons per encoder position, matching typical board
// wiring.
func (v *Virtual) ButtonToEncoderIndex(index int) int {
	return index / 2
}

// PassFilter accepts every reading. Debouncing is the board layer's job;
// virtual inputs arrive clean.
type PassFilter struct{}

func (PassFilter) Filter(index int, state bool) bool {
	return true
}
