// Package puzzlefile reads puzzles written as YAML documents and applies
// them to an elimination.Solver.
//
// A document lists the categories, the rules in the order they are
// applied, and optional questions:
//
//	name: zebra
//	categories:
//	  - name: position
//	    items: [1, 2, 3, 4, 5]
//	  - name: size
//	    items: [S, M, L]
//	    key: ordinal
//	rules:
//	  - op: match
//	    items: [Englishman, red]
//	  - op: greater_than
//	    items: [green, ivory]
//	    category: position
//	    bounds: [1]
//	  - op: less_than
//	    items: [Dana, black]
//	    category: position
//	    bounds: [2, null]
//	questions:
//	  - item: zebra
//	    category: nationality
//
// An item is a bare label or a mapping {category: c, item: label} for
// labels that occur in more than one category. A null bound is unbounded.
package puzzlefile

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/elimination/pkg/elimination"
)

// Rule operations.
const (
	OpMatch       = "match"
	OpUnmatch     = "unmatch"
	OpLessThan    = "less_than"
	OpGreaterThan = "greater_than"
	OpAdjacentTo  = "adjacent_to"
)

// KeyOrdinal orders a category by declaration order.
const KeyOrdinal = "ordinal"

var validate = validator.New()

// Document is a parsed puzzle.
type Document struct {
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"categories" validate:"required,min=1,dive"`
	Rules      []Rule     `yaml:"rules" validate:"dive"`
	Questions  []Question `yaml:"questions" validate:"dive"`
}

// Category declares one column of the puzzle.
type Category struct {
	Name  string `yaml:"name" validate:"required"`
	Items []any  `yaml:"items" validate:"required,min=1"`
	Key   string `yaml:"key" validate:"omitempty,oneof=ordinal numeric"`
}

// Rule is one rule call.
type Rule struct {
	Op       string     `yaml:"op" validate:"required,oneof=match unmatch less_than greater_than adjacent_to"`
	Items    []Ref      `yaml:"items" validate:"min=2"`
	Category string     `yaml:"category"`
	Bounds   []*float64 `yaml:"bounds" validate:"max=2"`
}

// Question asks which item of Category belongs with Item.
type Question struct {
	Item     Ref    `yaml:"item"`
	Category string `yaml:"category" validate:"required"`
}

// Ref is a reference to an item, bare or qualified by category.
type Ref struct {
	Category string
	Label    any
}

// UnmarshalYAML accepts a scalar label or a {category, item} mapping.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var q struct {
			Category string `yaml:"category"`
			Item     any    `yaml:"item"`
		}
		if err := node.Decode(&q); err != nil {
			return err
		}
		if q.Category == "" || q.Item == nil {
			return errors.Errorf("line %d: qualified item needs category and item", node.Line)
		}
		r.Category, r.Label = q.Category, q.Item
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: item must be a label or a {category, item} mapping", node.Line)
	}
	return node.Decode(&r.Label)
}

// Value returns the reference in the form the Solver accepts.
func (r Ref) Value() any {
	if r.Category != "" {
		return elimination.In(r.Category, r.Label)
	}
	return r.Label
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding puzzle")
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, errors.Wrap(err, "validating puzzle")
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading puzzle %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if doc.Name == "" {
		doc.Name = path
	}
	return doc, nil
}

// NewSolver creates a Solver for the document's categories without
// applying any rule.
func (d *Document) NewSolver(options ...elimination.Option) (*elimination.Solver, error) {
	cats := make([]elimination.Category, len(d.Categories))
	for i, c := range d.Categories {
		cats[i] = elimination.Category{Name: c.Name, Items: c.Items}
		if c.Key == KeyOrdinal {
			options = append(options, elimination.WithOrdinalKey(c.Name))
		}
	}
	s, err := elimination.New(cats, options...)
	if err != nil {
		return nil, errors.Wrap(err, "building solver")
	}
	return s, nil
}

// Apply runs one rule against s and returns the number of edges removed.
func Apply(s *elimination.Solver, r Rule) (int, error) {
	items := make([]any, len(r.Items))
	for i, ref := range r.Items {
		items[i] = ref.Value()
	}
	bounds := make([]elimination.Bound, len(r.Bounds))
	for i, b := range r.Bounds {
		if b != nil {
			bounds[i] = elimination.At(*b)
		}
	}

	if len(items) < 2 {
		return 0, errors.Errorf("%s needs at least 2 items, got %d", r.Op, len(items))
	}
	if r.Op == OpMatch {
		return s.Match(items[0], items[1], items[2:]...)
	}
	if len(items) != 2 {
		return 0, errors.Errorf("%s takes exactly 2 items, got %d", r.Op, len(items))
	}
	switch r.Op {
	case OpUnmatch:
		if len(bounds) > 0 || r.Category != "" {
			return 0, errors.Errorf("%s takes no category or bounds", r.Op)
		}
		return s.Unmatch(items[0], items[1])
	case OpLessThan, OpGreaterThan, OpAdjacentTo:
		if r.Category == "" {
			return 0, errors.Errorf("%s needs a category", r.Op)
		}
	default:
		return 0, errors.Errorf("unknown rule %q", r.Op)
	}

	switch r.Op {
	case OpLessThan:
		return s.LessThan(items[0], items[1], r.Category, bounds...)
	case OpGreaterThan:
		return s.GreaterThan(items[0], items[1], r.Category, bounds...)
	default:
		return s.AdjacentTo(items[0], items[1], r.Category, bounds...)
	}
}
