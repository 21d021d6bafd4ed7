package puzzlefile

import (
	"time"

	"github.com/pkg/errors"

	"github.com/gitrdm/elimination/pkg/elimination"
)

// Answer is the outcome of one question.
type Answer struct {
	Item       any    `json:"item"`
	Category   string `json:"category"`
	Label      any    `json:"label,omitempty"`
	Found      bool   `json:"found"`
	Candidates []any  `json:"candidates,omitempty"`
}

// Result summarizes a solved document.
type Result struct {
	Name     string            `json:"name"`
	Removed  []int             `json:"removed"`
	Edges    int               `json:"edges"`
	Solved   bool              `json:"solved"`
	Answers  []Answer          `json:"answers,omitempty"`
	Problems []string          `json:"problems,omitempty"`
	Stats    elimination.Stats `json:"stats"`
	Elapsed  time.Duration     `json:"elapsed"`

	Solver *elimination.Solver `json:"-"`
}

// Contradicted reports whether propagation left an item without
// candidates.
func (r *Result) Contradicted() bool { return len(r.Problems) > 0 }

// Solve builds a Solver for doc, applies every rule in order and answers
// the questions. A rule error stops the run.
func Solve(doc *Document, options ...elimination.Option) (*Result, error) {
	start := time.Now()
	s, err := doc.NewSolver(options...)
	if err != nil {
		return nil, err
	}

	res := &Result{Name: doc.Name, Solver: s, Removed: make([]int, 0, len(doc.Rules))}
	for i, r := range doc.Rules {
		n, err := Apply(s, r)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d (%s)", i+1, r.Op)
		}
		res.Removed = append(res.Removed, n)
	}

	res.Answers, err = Answers(s, doc.Questions)
	if err != nil {
		return nil, err
	}
	var ce elimination.ContradictionError
	if err := s.Check(); errors.As(err, &ce) {
		for _, h := range ce {
			res.Problems = append(res.Problems, elimination.In(h.Category, h.Item).String()+" has no "+h.In)
		}
	}
	res.Edges = s.Edges()
	res.Solved = s.Solved()
	res.Stats = s.Stats()
	res.Elapsed = time.Since(start)
	return res, nil
}

// Answers resolves each question against the current state of s.
func Answers(s *elimination.Solver, questions []Question) ([]Answer, error) {
	out := make([]Answer, 0, len(questions))
	for i, q := range questions {
		label, ok, err := s.CategoryFor(q.Item.Value(), q.Category)
		if err != nil {
			return nil, errors.Wrapf(err, "question %d", i+1)
		}
		a := Answer{Item: q.Item.Label, Category: q.Category, Label: label, Found: ok}
		if !ok {
			a.Candidates, err = s.AvailableFor(q.Item.Value(), q.Category)
			if err != nil {
				return nil, errors.Wrapf(err, "question %d", i+1)
			}
		}
		out = append(out, a)
	}
	return out, nil
}
