// Package elimination provides a constraint propagation engine for
// process-of-elimination ("zebra") puzzles.
//
// A puzzle has M categories of N items each. A Solver starts with every
// pairing of items from different categories possible, and each rule call
// removes the pairings that the rule, and everything it implies, makes
// impossible:
//
//	s, _ := elimination.FromColumns(
//	    []string{"nationality", "color"},
//	    [][]any{{"Englishman", "Spaniard"}, {"red", "green"}},
//	)
//	s.Match("Englishman", "red")
//	s.CategoryFor("Spaniard", "color") // "green", true, nil
//
// The Solver never searches. When propagation alone cannot decide a
// puzzle, the remaining candidates can be inspected with AvailableFor and
// FindMissing.
package elimination

import (
	"fmt"
	"sort"
)

// Solver holds the candidate matrix of one puzzle together with the
// assertions registered by ordering rules. It is not safe for concurrent
// use.
type Solver struct {
	ix     *index
	x      *matrix
	eng    *engine
	stats  *Stats
	tracer Tracer

	keyFuncs map[int]itemKey
	keys     map[int]keyTable
}

// New creates a Solver over the given categories. All categories must
// have the same number of items.
func New(categories []Category, options ...Option) (*Solver, error) {
	ix, err := newIndex(categories)
	if err != nil {
		return nil, err
	}

	x := newMatrix(len(ix.categories), ix.n)
	s := &Solver{
		ix:       ix,
		x:        x,
		stats:    &Stats{},
		keyFuncs: make(map[int]itemKey),
		keys:     make(map[int]keyTable),
	}
	s.eng = newEngine(x, s.stats)

	for _, option := range append(append([]Option(nil), options...), defaults...) {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if _, silent := s.tracer.(DefaultTracer); !silent {
		s.eng.onUnlink = func(p, q int) {
			s.tracer.Trace(Event{Kind: EventUnlink, Items: []string{s.ix.describe(p), s.ix.describe(q)}})
		}
		s.eng.onSatisfied = func(a *assertion) {
			s.tracer.Trace(Event{Kind: EventSatisfied, Detail: a.desc})
		}
	}
	return s, nil
}

// FromMap creates a Solver from a map of category label to items. The
// categories are ordered by label.
func FromMap(categories map[string][]any, options ...Option) (*Solver, error) {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	cats := make([]Category, len(names))
	for i, name := range names {
		cats[i] = Category{Name: name, Items: categories[name]}
	}
	return New(cats, options...)
}

// FromColumns creates a Solver from parallel slices of category labels and
// item columns.
func FromColumns(names []string, columns [][]any, options ...Option) (*Solver, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d category labels for %d columns", ErrInvalidProblem, len(names), len(columns))
	}
	cats := make([]Category, len(names))
	for i := range names {
		cats[i] = Category{Name: names[i], Items: columns[i]}
	}
	return New(cats, options...)
}

// Reset restores every cross-category pairing and discards all
// assertions. Statistics are kept.
func (s *Solver) Reset() {
	s.eng.reset()
	s.tracer.Trace(Event{Kind: EventReset, Edges: s.x.edges()})
}

// M returns the number of categories.
func (s *Solver) M() int { return s.x.m }

// N returns the number of items per category.
func (s *Solver) N() int { return s.x.n }

// Categories returns the category labels in position order.
func (s *Solver) Categories() []string {
	return append([]string(nil), s.ix.categories...)
}

// Items returns the item labels of category in declaration order.
func (s *Solver) Items(category string) ([]any, error) {
	c, err := s.ix.category(category)
	if err != nil {
		return nil, err
	}
	return append([]any(nil), s.ix.labels[c*s.ix.n:(c+1)*s.ix.n]...), nil
}

// ItemToPos resolves a bare label or a Qualified reference to its matrix
// position and category index.
func (s *Solver) ItemToPos(ref any) (pos, category int, err error) {
	return s.ix.itemToPos(ref)
}

// PosToItem returns the category and item label at pos. It panics if pos
// is out of range.
func (s *Solver) PosToItem(pos int) (category string, label any) {
	return s.ix.posToItem(pos)
}

// LinkedSet returns the positions of category cat still linked to pos.
// It returns nil if pos or cat is out of range.
func (s *Solver) LinkedSet(pos, cat int) []int {
	if !s.valid(pos) || cat < 0 || cat >= s.x.m {
		return nil
	}
	return s.x.linkedIn(pos, cat).positions()
}

// Linked reports whether the items at p and q may still share a row. It
// is false if either position is out of range.
func (s *Solver) Linked(p, q int) bool {
	return s.valid(p) && s.valid(q) && s.x.linked(p, q)
}

func (s *Solver) valid(pos int) bool { return pos >= 0 && pos < s.x.size() }

// Edge is a surviving pairing, with P < Q.
type Edge struct {
	P, Q int
}

// EdgeList returns every surviving pairing in ascending order.
func (s *Solver) EdgeList() []Edge {
	var out []Edge
	for p, row := range s.x.rows {
		row.each(func(q int) {
			if q > p {
				out = append(out, Edge{P: p, Q: q})
			}
		})
	}
	return out
}
