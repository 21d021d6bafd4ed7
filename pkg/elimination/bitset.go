package elimination

import (
	"math/bits"
)

// bitset is a fixed-width set of matrix positions backed by 64-bit words.
// Bit i represents position i. A bitset is mutated in place; every row of
// the candidate matrix is one bitset owned exclusively by its Solver.
type bitset []uint64

func newBitset(size int) bitset {
	return make(bitset, (size+63)/64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b bitset) clear(i int) {
	b[i/64] &^= 1 << uint(i%64)
}

// setRange sets bits [lo, hi).
func (b bitset) setRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		b.set(i)
	}
}

func (b bitset) reset() {
	for i := range b {
		b[i] = 0
	}
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

func (b bitset) copyFrom(o bitset) {
	copy(b, o)
}

// and stores b ∧ o into b.
func (b bitset) and(o bitset) {
	for i := range b {
		b[i] &= o[i]
	}
}

// or stores b ∨ o into b.
func (b bitset) or(o bitset) {
	for i := range b {
		b[i] |= o[i]
	}
}

// andNot stores b ∧ ¬o into b.
func (b bitset) andNot(o bitset) {
	for i := range b {
		b[i] &^= o[i]
	}
}

func (b bitset) intersects(o bitset) bool {
	for i := range b {
		if b[i]&o[i] != 0 {
			return true
		}
	}
	return false
}

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// first returns the lowest set bit, or -1 for an empty set.
func (b bitset) first() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// each calls f for every set bit in ascending order.
func (b bitset) each(f func(i int)) {
	for i, w := range b {
		for w != 0 {
			off := bits.TrailingZeros64(w)
			f(i*64 + off)
			w &= w - 1
		}
	}
}

// positions returns the set bits in ascending order.
func (b bitset) positions() []int {
	out := make([]int, 0, b.count())
	b.each(func(i int) { out = append(out, i) })
	return out
}
