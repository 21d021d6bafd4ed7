package elimination

import (
	"fmt"
)

// Match states that item1 belongs to the same row as item2, or as one of
// item2 and extra. All targets must be in the same category. It removes
// every pairing of item1 with the other items of that category and returns
// the number of edges removed, consequences included.
func (s *Solver) Match(item1, item2 any, extra ...any) (int, error) {
	const op = "match"
	p1, _, err := s.ix.itemToPos(item1)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	p2, c2, err := s.ix.itemToPos(item2)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	targets := newBitset(s.x.size())
	targets.set(p2)
	for _, ref := range extra {
		p, c, err := s.ix.itemToPos(ref)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if c != c2 {
			return 0, fmt.Errorf("%s: %s is not in category %q: %w",
				op, s.ix.describe(p), s.ix.categories[c2], ErrCategoryMismatch)
		}
		targets.set(p)
	}

	items := s.describeAll(append([]int{p1}, targets.positions()...))
	if s.x.home(p1) == c2 {
		if targets.count() == 1 && targets.has(p1) {
			s.done(op, items, "", 0)
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %s with its own category: %w", op, s.ix.describe(p1), ErrSelfOperation)
	}

	mask := s.x.blocks[c2].clone()
	mask.andNot(targets)
	count := s.eng.propagate(removal{pos: p1, cat: c2, mask: mask})
	s.done(op, items, "", count)
	return count, nil
}

// Unmatch states that item1 and item2 are not in the same row.
func (s *Solver) Unmatch(item1, item2 any) (int, error) {
	return s.unmatch("unmatch", item1, item2)
}

// Unlink is Unmatch.
func (s *Solver) Unlink(item1, item2 any) (int, error) {
	return s.unmatch("unlink", item1, item2)
}

func (s *Solver) unmatch(op string, item1, item2 any) (int, error) {
	p1, _, err := s.ix.itemToPos(item1)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	p2, c2, err := s.ix.itemToPos(item2)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if p1 == p2 {
		return 0, fmt.Errorf("%s: %s with itself: %w", op, s.ix.describe(p1), ErrSelfOperation)
	}

	mask := newBitset(s.x.size())
	mask.set(p2)
	count := s.eng.propagate(removal{pos: p1, cat: c2, mask: mask})
	s.done(op, s.describeAll([]int{p1, p2}), "", count)
	return count, nil
}

// LessThan states that the key of item1 in category is less than the key
// of item2. Bounds refine the difference d = key(item2) - key(item1):
//
//	no bounds    d > 0
//	one bound    d == b
//	two bounds   lo <= d <= hi, either end may be Unbounded
//
// Keys come from the category's key function (WithKey, WithOrdinalKey),
// by default the numeric value of the item label. The two items are also
// unmatched. The constraint is kept until both items are resolved in
// category.
func (s *Solver) LessThan(item1, item2 any, category string, bounds ...Bound) (int, error) {
	return s.order("less_than", item1, item2, category, bounds, signedRelation)
}

// GreaterThan is LessThan with the items swapped.
func (s *Solver) GreaterThan(item1, item2 any, category string, bounds ...Bound) (int, error) {
	return s.order("greater_than", item2, item1, category, bounds, signedRelation)
}

// AdjacentTo states that the keys of item1 and item2 in category differ by
// exactly one. Bounds refine the distance |d|:
//
//	one bound    |d| == |b|
//	two bounds   lo <= |d| <= hi, a missing lo is 0
func (s *Solver) AdjacentTo(item1, item2 any, category string, bounds ...Bound) (int, error) {
	return s.order("adjacent_to", item1, item2, category, bounds, unsignedRelation)
}

// order validates an ordering rule completely before unmatching the items
// and registering its assertion.
func (s *Solver) order(op string, item1, item2 any, category string, bounds []Bound,
	build func([]Bound) (relation, error)) (int, error) {
	rel, err := build(bounds)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	p1, _, err := s.ix.itemToPos(item1)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	p2, _, err := s.ix.itemToPos(item2)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	cat, err := s.ix.category(category)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if p1 == p2 {
		return 0, fmt.Errorf("%s: %s with itself: %w", op, s.ix.describe(p1), ErrSelfOperation)
	}
	if s.x.home(p1) == cat && s.x.home(p2) == cat {
		return 0, fmt.Errorf("%s: %s and %s are both in %q: %w",
			op, s.ix.describe(p1), s.ix.describe(p2), category, ErrCategoryMismatch)
	}
	keys, err := s.keyTable(cat)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	items := s.describeAll([]int{p1, p2})
	a := &assertion{
		pos1: p1,
		pos2: p2,
		cat:  cat,
		rel:  rel,
		keys: keys,
		desc: fmt.Sprintf("%s %s %s in %s", items[0], rel, items[1], category),
	}
	s.eng.register(a)
	s.tracer.Trace(Event{Kind: EventAssert, Op: op, Items: items, Detail: a.desc})

	mask := newBitset(s.x.size())
	mask.set(p2)
	count := s.eng.propagate(removal{pos: p1, cat: s.x.home(p2), mask: mask})
	s.done(op, items, rel.String(), count)
	return count, nil
}

// done records a successful rule call.
func (s *Solver) done(op string, items []string, detail string, removed int) {
	s.stats.Rules++
	if _, silent := s.tracer.(DefaultTracer); silent {
		return
	}
	s.tracer.Trace(Event{Kind: EventRule, Op: op, Items: items, Detail: detail, Removed: removed, Edges: s.x.edges()})
}

func (s *Solver) describeAll(positions []int) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = s.ix.describe(p)
	}
	return out
}
