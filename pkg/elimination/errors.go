package elimination

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the Solver. All of them describe a caller mistake and
// are reported before the matrix is touched, so a failed call never leaves
// a partial update behind.
var (
	ErrInvalidProblem   = errors.New("invalid problem definition")
	ErrAmbiguous        = errors.New("ambiguous item label")
	ErrUnknown          = errors.New("unknown item or category")
	ErrSelfOperation    = errors.New("invalid operation of an item on itself")
	ErrCategoryMismatch = errors.New("category mismatch")
	ErrArity            = errors.New("comparison accepts 0, 1 or 2 bounds")
	ErrBound            = errors.New("bound must be finite")
	ErrNotNumeric       = errors.New("category key is not numeric")
	ErrContradiction    = errors.New("contradiction")
)

// Hole names an item that has no candidate left in some category.
type Hole struct {
	Category string
	Item     any
	In       string
}

// ContradictionError lists every item that propagation left without a
// candidate in some other category. It is returned by Check; rule calls
// never fail because of it.
type ContradictionError []Hole

func (e ContradictionError) Error() string {
	const msg = "contradiction"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, h := range e {
		s[i] = fmt.Sprintf("(%s, %v) has no %s", h.Category, h.Item, h.In)
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

func (e ContradictionError) Unwrap() error { return ErrContradiction }
