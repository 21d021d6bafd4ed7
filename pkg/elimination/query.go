package elimination

import (
	"fmt"
)

// Edges returns the number of surviving pairings between items of
// different categories.
func (s *Solver) Edges() int { return s.x.edges() }

// Solved reports whether every item is linked to exactly one item of each
// category.
func (s *Solver) Solved() bool { return s.x.solved() }

// AssertionCount returns the number of ordering constraints still waiting
// for their items to be resolved.
func (s *Solver) AssertionCount() int { return s.eng.reg.live }

// CategoryFor returns the single item of category that item is linked to.
// ok is false when zero or several candidates remain.
func (s *Solver) CategoryFor(item any, category string) (label any, ok bool, err error) {
	p, c, err := s.resolve(item, category)
	if err != nil {
		return nil, false, fmt.Errorf("category_for: %w", err)
	}
	linked := s.x.linkedIn(p, c)
	if linked.count() != 1 {
		return nil, false, nil
	}
	return s.ix.labels[linked.first()], true, nil
}

// AvailableFor returns the items of category that item may still be
// linked to, in declaration order.
func (s *Solver) AvailableFor(item any, category string) ([]any, error) {
	p, c, err := s.resolve(item, category)
	if err != nil {
		return nil, fmt.Errorf("available_for: %w", err)
	}
	return s.labelsOf(s.x.linkedIn(p, c).positions()), nil
}

// FindMissing returns the items of category that are not yet linked to
// exactly one item of every other category.
func (s *Solver) FindMissing(category string) ([]any, error) {
	c, err := s.ix.category(category)
	if err != nil {
		return nil, fmt.Errorf("find_missing: %w", err)
	}
	var out []any
	for p := c * s.x.n; p < (c+1)*s.x.n; p++ {
		for o := 0; o < s.x.m; o++ {
			if s.x.countIn(p, o) != 1 {
				out = append(out, s.ix.labels[p])
				break
			}
		}
	}
	return out, nil
}

// Matches returns the positions that are the only candidate of their
// category for pos, pos itself included.
func (s *Solver) Matches(pos int) []int {
	var out []int
	for c := 0; c < s.x.m; c++ {
		linked := s.x.linkedIn(pos, c)
		if linked.count() == 1 {
			out = append(out, linked.first())
		}
	}
	return out
}

// Check returns a ContradictionError if any item has no candidate left in
// some category, and nil otherwise.
func (s *Solver) Check() error {
	var holes ContradictionError
	for p := 0; p < s.x.size(); p++ {
		for c := 0; c < s.x.m; c++ {
			if s.x.countIn(p, c) == 0 {
				cat, label := s.ix.posToItem(p)
				holes = append(holes, Hole{Category: cat, Item: label, In: s.ix.categories[c]})
			}
		}
	}
	if len(holes) > 0 {
		return holes
	}
	return nil
}

func (s *Solver) resolve(item any, category string) (int, int, error) {
	p, _, err := s.ix.itemToPos(item)
	if err != nil {
		return 0, 0, err
	}
	c, err := s.ix.category(category)
	if err != nil {
		return 0, 0, err
	}
	return p, c, nil
}

func (s *Solver) labelsOf(positions []int) []any {
	out := make([]any, len(positions))
	for i, p := range positions {
		out[i] = s.ix.labels[p]
	}
	return out
}
