package global

const (
	MinBPM     = 20
	MaxBPM     = 255
	DefaultBPM = 120
)

// BPM is the global tempo counter.
type BPM struct {
	value uint16
}

func NewBPM() *BPM {
	return &BPM{value: DefaultBPM}
}

// Value returns the current tempo.
func (b *BPM) Value() uint16 {
	return b.value
}

// Increment raises the tempo by delta, clamped at MaxBPM. Returns false
// when already at the boundary.
func (b *BPM) Increment(delta uint16) bool {
	if b.value >= MaxBPM {
		return false
	}
	if b.value+delta > MaxBPM {
		b.value = MaxBPM
	} else {
		b.value += delta
	}
	return true
}

// Decrement lowers the tempo by delta, clamped at MinBPM. Returns false
// when already at the boundary.
func (b *BPM) Decrement(delta uint16) bool {
	if b.value <= MinBPM {
		return false
	}
	if delta >= b.value-MinBPM {
		b.value = MinBPM
	} else {
		b.value -= delta
	}
	return true
}
