package button

// incDecMode selects the boundary behavior of the 7-bit multi-value
// counters.
type incDecMode uint8

const (
	// incOverflow wraps to zero past 127.
	incOverflow incDecMode = iota
	// incEdge holds at 127.
	incEdge
)

// increment7Bit advances a 7-bit counter by step and applies the boundary
// rule. Both inputs are treated as 0-127 quantities.
func increment7Bit(current, step uint8, mode incDecMode) uint8 {
	sum := uint16(current&0x7F) + uint16(step&0x7F)
	if sum <= 127 {
		return uint8(sum)
	}
	if mode == incOverflow {
		return 0
	}
	return 127
}
