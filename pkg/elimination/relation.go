// Package elimination provides the comparison relations used by assertions.
//
// A relation is a predicate over the keys of two candidates. Each relation
// may also enumerate, for a given key, the keys on the other side that can
// satisfy it. Enumeration is an optimization only: it is used for integral
// keys and bounds, where the arithmetic is exact, and every enumerated key
// is still checked with holds. Outside those conditions verification falls
// back to scanning every candidate, so both paths accept the same pairs.
package elimination

import (
	"fmt"
	"math"
)

// Bound is one end of a range passed to LessThan, GreaterThan or
// AdjacentTo. The zero value is Unbounded.
type Bound struct {
	value float64
	set   bool
}

// At returns a finite bound.
func At(v float64) Bound { return Bound{value: v, set: true} }

// Unbounded leaves one end of a range open.
var Unbounded = Bound{}

// IsSet reports whether b is finite.
func (b Bound) IsSet() bool { return b.set }

// Value returns the finite value of b. It is zero when b is unbounded.
func (b Bound) Value() float64 { return b.value }

func (b Bound) String() string {
	if !b.set {
		return "unbounded"
	}
	return fmt.Sprint(b.value)
}

func (b Bound) or(def float64) float64 {
	if !b.set {
		return def
	}
	return b.value
}

// relation compares the key of an endpoint-1 candidate (k1) against the key
// of an endpoint-2 candidate (k2).
type relation interface {
	holds(k1, k2 float64) bool

	// partners returns the keys that may satisfy the relation together with
	// k: endpoint-2 keys for an endpoint-1 k, or endpoint-1 keys when
	// reverse is set. It reports false when it cannot enumerate fewer than
	// limit keys exactly, in which case the caller scans instead.
	partners(k float64, reverse bool, limit int) ([]float64, bool)

	String() string
}

// maxExact is the largest magnitude for which float64 integer arithmetic is
// exact.
const maxExact = 1 << 52

func integral(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) || math.Abs(v) > maxExact {
			return false
		}
	}
	return true
}

// rangeKeys enumerates the integers in [lo, hi], or reports false when
// there are limit or more of them.
func rangeKeys(lo, hi float64, limit int) ([]float64, bool) {
	if hi < lo {
		return nil, true
	}
	if hi-lo+1 >= float64(limit) {
		return nil, false
	}
	out := make([]float64, 0, int(hi-lo+1))
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out, true
}

// offset holds when k2 − k1 == c.
type offset struct{ c float64 }

func (r offset) holds(k1, k2 float64) bool { return k2-k1 == r.c }

func (r offset) partners(k float64, reverse bool, limit int) ([]float64, bool) {
	if !integral(k, r.c) || limit <= 1 {
		return nil, false
	}
	if reverse {
		return []float64{k - r.c}, true
	}
	return []float64{k + r.c}, true
}

func (r offset) String() string { return fmt.Sprintf("k2 - k1 == %v", r.c) }

// distance holds when |k2 − k1| == c.
type distance struct{ c float64 }

func (r distance) holds(k1, k2 float64) bool { return math.Abs(k2-k1) == r.c }

func (r distance) partners(k float64, _ bool, limit int) ([]float64, bool) {
	if !integral(k, r.c) || limit <= 2 {
		return nil, false
	}
	if r.c == 0 {
		return []float64{k}, true
	}
	return []float64{k - r.c, k + r.c}, true
}

func (r distance) String() string { return fmt.Sprintf("|k2 - k1| == %v", r.c) }

// span holds when lo ≤ k2 − k1 ≤ hi. Either end may be infinite.
type span struct{ lo, hi float64 }

func (r span) holds(k1, k2 float64) bool {
	d := k2 - k1
	return r.lo <= d && d <= r.hi
}

func (r span) partners(k float64, reverse bool, limit int) ([]float64, bool) {
	if !integral(k, r.lo, r.hi) {
		return nil, false
	}
	if reverse {
		return rangeKeys(k-r.hi, k-r.lo, limit)
	}
	return rangeKeys(k+r.lo, k+r.hi, limit)
}

func (r span) String() string { return fmt.Sprintf("%v <= k2 - k1 <= %v", r.lo, r.hi) }

// openSpan holds when lo < k2 − k1 < hi. Either end may be infinite.
type openSpan struct{ lo, hi float64 }

func (r openSpan) holds(k1, k2 float64) bool {
	d := k2 - k1
	return r.lo < d && d < r.hi
}

func (r openSpan) partners(k float64, reverse bool, limit int) ([]float64, bool) {
	if !integral(k, r.lo, r.hi) {
		return nil, false
	}
	if reverse {
		return rangeKeys(k-r.hi+1, k-r.lo-1, limit)
	}
	return rangeKeys(k+r.lo+1, k+r.hi-1, limit)
}

func (r openSpan) String() string { return fmt.Sprintf("%v < k2 - k1 < %v", r.lo, r.hi) }

// band holds when lo ≤ |k2 − k1| ≤ hi. The relation is symmetric.
type band struct{ lo, hi float64 }

func (r band) holds(k1, k2 float64) bool {
	d := math.Abs(k2 - k1)
	return r.lo <= d && d <= r.hi
}

func (r band) partners(k float64, _ bool, limit int) ([]float64, bool) {
	lo := math.Max(r.lo, 0)
	if !integral(k, lo, r.hi) || r.hi < lo {
		return nil, r.hi < lo
	}
	if lo == 0 {
		return rangeKeys(k-r.hi, k+r.hi, limit)
	}
	below, ok := rangeKeys(k-r.hi, k-lo, limit)
	if !ok {
		return nil, false
	}
	above, ok := rangeKeys(k+lo, k+r.hi, limit-len(below))
	if !ok {
		return nil, false
	}
	return append(below, above...), true
}

func (r band) String() string { return fmt.Sprintf("%v <= |k2 - k1| <= %v", r.lo, r.hi) }

// signedRelation selects the LessThan relation for the given bounds.
func signedRelation(bounds []Bound) (relation, error) {
	switch len(bounds) {
	case 0:
		return openSpan{lo: 0, hi: math.Inf(1)}, nil
	case 1:
		if !bounds[0].set {
			return nil, fmt.Errorf("exact offset: %w", ErrBound)
		}
		return offset{c: bounds[0].value}, nil
	case 2:
		return span{lo: bounds[0].or(math.Inf(-1)), hi: bounds[1].or(math.Inf(1))}, nil
	default:
		return nil, fmt.Errorf("%w (%d given)", ErrArity, len(bounds))
	}
}

// unsignedRelation selects the AdjacentTo relation for the given bounds.
func unsignedRelation(bounds []Bound) (relation, error) {
	switch len(bounds) {
	case 0:
		return distance{c: 1}, nil
	case 1:
		if !bounds[0].set {
			return nil, fmt.Errorf("exact distance: %w", ErrBound)
		}
		return distance{c: math.Abs(bounds[0].value)}, nil
	case 2:
		return band{lo: bounds[0].or(0), hi: bounds[1].or(math.Inf(1))}, nil
	default:
		return nil, fmt.Errorf("%w (%d given)", ErrArity, len(bounds))
	}
}
