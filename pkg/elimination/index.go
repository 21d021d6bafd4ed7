// Package elimination provides the position index for process-of-elimination puzzles.
// This file maps human-facing category and item labels to dense matrix
// positions and back.
package elimination

import (
	"fmt"
	"reflect"
)

// Category is one column of a puzzle: a label and its mutually exclusive
// items. Item labels may be any comparable value except nil.
type Category struct {
	Name  string
	Items []any
}

// Qualified references an item by category and label. It is required for
// labels that occur in more than one category.
type Qualified struct {
	Category string
	Label    any
}

// In returns a qualified reference to label within category.
func In(category string, label any) Qualified {
	return Qualified{Category: category, Label: label}
}

func (q Qualified) String() string {
	return fmt.Sprintf("(%s, %v)", q.Category, q.Label)
}

const ambiguous = -1

// index resolves references to positions. Position p holds labels[p] and
// belongs to category p / n.
type index struct {
	n          int
	categories []string
	labels     []any
	byCategory map[string]int
	unique     map[any]int   // bare label -> position, or ambiguous
	local      []map[any]int // per category: label -> position
}

func newIndex(cats []Category) (*index, error) {
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidProblem)
	}
	n := len(cats[0].Items)
	if n == 0 {
		return nil, fmt.Errorf("%w: category %q has no items", ErrInvalidProblem, cats[0].Name)
	}

	ix := &index{
		n:          n,
		categories: make([]string, 0, len(cats)),
		labels:     make([]any, 0, len(cats)*n),
		byCategory: make(map[string]int, len(cats)),
		unique:     make(map[any]int, len(cats)*n),
		local:      make([]map[any]int, 0, len(cats)),
	}

	for c, cat := range cats {
		if _, dup := ix.byCategory[cat.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidProblem, cat.Name)
		}
		if len(cat.Items) != n {
			return nil, fmt.Errorf("%w: all categories must have the same number of items (%d != %d in %q)",
				ErrInvalidProblem, n, len(cat.Items), cat.Name)
		}
		ix.byCategory[cat.Name] = c
		ix.categories = append(ix.categories, cat.Name)

		local := make(map[any]int, n)
		for _, label := range cat.Items {
			if err := checkLabel(label); err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrInvalidProblem, err, cat.Name)
			}
			if _, dup := local[label]; dup {
				return nil, fmt.Errorf("%w: duplicate item %v in %q", ErrInvalidProblem, label, cat.Name)
			}
			pos := len(ix.labels)
			local[label] = pos
			ix.labels = append(ix.labels, label)
			if _, seen := ix.unique[label]; seen {
				ix.unique[label] = ambiguous
			} else {
				ix.unique[label] = pos
			}
		}
		ix.local = append(ix.local, local)
	}
	return ix, nil
}

func checkLabel(label any) error {
	if label == nil {
		return fmt.Errorf("nil item label")
	}
	if _, ok := label.(Qualified); ok {
		return fmt.Errorf("item label %v is a qualified reference", label)
	}
	if !reflect.TypeOf(label).Comparable() {
		return fmt.Errorf("item label of type %T is not comparable", label)
	}
	return nil
}

// category resolves a category label to its index.
func (ix *index) category(name string) (int, error) {
	c, ok := ix.byCategory[name]
	if !ok {
		return 0, fmt.Errorf("category %q: %w", name, ErrUnknown)
	}
	return c, nil
}

// itemToPos resolves a bare label or a Qualified reference to a position
// and its category index.
func (ix *index) itemToPos(ref any) (int, int, error) {
	if q, ok := ref.(Qualified); ok {
		c, err := ix.category(q.Category)
		if err != nil {
			return 0, 0, err
		}
		if q.Label == nil || !reflect.TypeOf(q.Label).Comparable() {
			return 0, 0, fmt.Errorf("item %v: %w", q, ErrUnknown)
		}
		pos, ok := ix.local[c][q.Label]
		if !ok {
			return 0, 0, fmt.Errorf("item %v: %w", q, ErrUnknown)
		}
		return pos, c, nil
	}

	if ref == nil || !reflect.TypeOf(ref).Comparable() {
		return 0, 0, fmt.Errorf("item %v: %w", ref, ErrUnknown)
	}
	pos, ok := ix.unique[ref]
	if !ok {
		return 0, 0, fmt.Errorf("item %v: %w", ref, ErrUnknown)
	}
	if pos == ambiguous {
		return 0, 0, fmt.Errorf("item %v: %w", ref, ErrAmbiguous)
	}
	return pos, pos / ix.n, nil
}

// posToItem returns the category and item label at pos.
func (ix *index) posToItem(pos int) (string, any) {
	return ix.categories[pos/ix.n], ix.labels[pos]
}

// describe formats pos as an unambiguous (category, label) pair.
func (ix *index) describe(pos int) string {
	cat, label := ix.posToItem(pos)
	return fmt.Sprintf("(%s, %v)", cat, label)
}
