package button

// bitSet is a fixed-capacity bit array. Capacity is decided at construction
// and never grows; callers validate indices before use.
type bitSet struct {
	words []uint64
	size  int
}

func newBitSet(size int) *bitSet {
	return &bitSet{
		words: make([]uint64, (size+63)/64),
		size:  size,
	}
}

func (b *bitSet) get(index int) bool {
	return b.words[index/64]&(1<<(uint(index)%64)) != 0
}

func (b *bitSet) set(index int, value bool) {
	if value {
		b.words[index/64] |= 1 << (uint(index) % 64)
	} else {
		b.words[index/64] &^= 1 << (uint(index) % 64)
	}
}
