// Package elimination provides the candidate matrix for process-of-elimination puzzles.
// This file defines the symmetric adjacency structure over all item positions.
//
// The matrix has M·N rows, one per item. Row p holds the positions that
// item p may still share a final row with. Three invariants hold at all
// times:
//
//   - symmetry: p ∈ row(q) ⇔ q ∈ row(p)
//   - the diagonal is always set
//   - within a category block only the diagonal is set
//
// Only the closure engine clears bits; reset is the only operation that
// sets them.
package elimination

// matrix is the candidate adjacency matrix of one Solver.
type matrix struct {
	m, n   int
	rows   []bitset
	blocks []bitset // blocks[c] has bits [c·n, (c+1)·n)
	all    bitset   // every valid position
}

func newMatrix(m, n int) *matrix {
	size := m * n
	x := &matrix{
		m:      m,
		n:      n,
		rows:   make([]bitset, size),
		blocks: make([]bitset, m),
		all:    newBitset(size),
	}
	x.all.setRange(0, size)
	for c := 0; c < m; c++ {
		x.blocks[c] = newBitset(size)
		x.blocks[c].setRange(c*n, (c+1)*n)
	}
	for p := range x.rows {
		x.rows[p] = newBitset(size)
	}
	x.reset()
	return x
}

// reset links every pair of items in different categories.
func (x *matrix) reset() {
	for p, row := range x.rows {
		row.copyFrom(x.all)
		row.andNot(x.blocks[x.home(p)])
		row.set(p)
	}
}

func (x *matrix) size() int { return x.m * x.n }

// home returns the category index of position p.
func (x *matrix) home(p int) int { return p / x.n }

func (x *matrix) linked(p, q int) bool { return x.rows[p].has(q) }

// unlink clears the edge between p and q in both directions.
func (x *matrix) unlink(p, q int) {
	x.rows[p].clear(q)
	x.rows[q].clear(p)
}

// linkedIn returns the positions of category cat still linked to p.
// The result is a fresh bitset the caller may modify.
func (x *matrix) linkedIn(p, cat int) bitset {
	out := x.rows[p].clone()
	out.and(x.blocks[cat])
	return out
}

// countIn returns how many items of category cat are still linked to p.
func (x *matrix) countIn(p, cat int) int {
	n := 0
	row := x.rows[p]
	for q := cat * x.n; q < (cat+1)*x.n; q++ {
		if row.has(q) {
			n++
		}
	}
	return n
}

// edges returns the number of off-diagonal links, counting each pair once.
func (x *matrix) edges() int {
	total := 0
	for _, row := range x.rows {
		total += row.count()
	}
	return (total - x.size()) / 2
}

// solved reports whether every item has exactly one link per category.
func (x *matrix) solved() bool {
	for _, row := range x.rows {
		if row.count() != x.m {
			return false
		}
	}
	return true
}
