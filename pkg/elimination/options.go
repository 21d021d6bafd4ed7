package elimination

import (
	"errors"
	"fmt"
	"math"
)

// KeyFunc maps an item label to the value ordering rules compare. It is
// evaluated once per item of a linking category.
type KeyFunc func(label any) (float64, error)

// itemKey is a KeyFunc that also receives the item's index in its category.
type itemKey func(i int, label any) (float64, error)

// Option configures a Solver.
type Option func(s *Solver) error

// WithTracer attaches a diagnostic tracer.
func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithKey sets the key function of a category.
func WithKey(category string, fn KeyFunc) Option {
	return func(s *Solver) error {
		c, err := s.ix.category(category)
		if err != nil {
			return fmt.Errorf("%w: key for %v", ErrInvalidProblem, err)
		}
		if fn == nil {
			return fmt.Errorf("%w: nil key function for %q", ErrInvalidProblem, category)
		}
		s.keyFuncs[c] = func(_ int, label any) (float64, error) { return fn(label) }
		return nil
	}
}

// WithOrdinalKey orders a category by the position of each item in its
// declaration, starting at 0.
func WithOrdinalKey(category string) Option {
	return func(s *Solver) error {
		c, err := s.ix.category(category)
		if err != nil {
			return fmt.Errorf("%w: key for %v", ErrInvalidProblem, err)
		}
		s.keyFuncs[c] = func(i int, _ any) (float64, error) { return float64(i), nil }
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

// DefaultKey converts numeric labels to float64. Any other label fails
// with ErrNotNumeric.
func DefaultKey(label any) (float64, error) {
	switch v := label.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		if math.IsNaN(v) {
			return 0, fmt.Errorf("label %v: %w", v, ErrNotNumeric)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("label %v (%T): %w", label, label, ErrNotNumeric)
	}
}

// keyTable returns the cached keys of category c, computing them on first
// use.
func (s *Solver) keyTable(c int) (keyTable, error) {
	if t, ok := s.keys[c]; ok {
		return t, nil
	}
	fn, ok := s.keyFuncs[c]
	if !ok {
		fn = func(_ int, label any) (float64, error) { return DefaultKey(label) }
	}

	n := s.ix.n
	t := keyTable{base: c * n, keys: make([]float64, n), exact: true}
	for i := 0; i < n; i++ {
		k, err := fn(i, s.ix.labels[t.base+i])
		if err != nil {
			return keyTable{}, fmt.Errorf("category %q: %w", s.ix.categories[c], wrapNumeric(err))
		}
		if math.IsNaN(k) {
			return keyTable{}, fmt.Errorf("category %q: key of %v is NaN: %w",
				s.ix.categories[c], s.ix.labels[t.base+i], ErrNotNumeric)
		}
		t.keys[i] = k
		if !integral(k) {
			t.exact = false
		}
	}
	s.keys[c] = t
	return t, nil
}

func wrapNumeric(err error) error {
	if errors.Is(err, ErrNotNumeric) {
		return err
	}
	return fmt.Errorf("%v: %w", err, ErrNotNumeric)
}
