package puzzlefile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/elimination/pkg/elimination"
)

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`
name: small
categories:
  - name: color
    items: [red, blue]
  - name: shirt
    items: [red, green]
  - name: size
    items: [S, L]
    key: ordinal
rules:
  - op: match
    items: [{category: color, item: red}, green]
  - op: less_than
    items: [blue, L]
    category: size
    bounds: [null, 1]
questions:
  - item: {category: shirt, item: red}
    category: size
`))
	require.NoError(t, err)
	assert.Equal(t, "small", doc.Name)
	require.Len(t, doc.Categories, 3)
	assert.Equal(t, []any{"red", "blue"}, doc.Categories[0].Items)
	assert.Equal(t, KeyOrdinal, doc.Categories[2].Key)

	require.Len(t, doc.Rules, 2)
	assert.Equal(t, Ref{Category: "color", Label: "red"}, doc.Rules[0].Items[0])
	assert.Equal(t, Ref{Label: "green"}, doc.Rules[0].Items[1])
	require.Len(t, doc.Rules[1].Bounds, 2)
	assert.Nil(t, doc.Rules[1].Bounds[0])
	assert.Equal(t, 1.0, *doc.Rules[1].Bounds[1])

	require.Len(t, doc.Questions, 1)
	assert.Equal(t, elimination.In("shirt", "red"), doc.Questions[0].Item.Value())
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no categories", "name: x\n"},
		{"empty items", "categories: [{name: a, items: []}]\n"},
		{"unknown op", "categories: [{name: a, items: [1]}]\nrules: [{op: guess, items: [1, 2]}]\n"},
		{"one item", "categories: [{name: a, items: [1]}]\nrules: [{op: match, items: [1]}]\n"},
		{"three bounds", "categories: [{name: a, items: [1]}]\nrules: [{op: less_than, items: [1, 2], category: a, bounds: [1, 2, 3]}]\n"},
		{"bad key", "categories: [{name: a, items: [1], key: alphabetic}]\n"},
		{"nested item", "categories: [{name: a, items: [1]}]\nrules: [{op: match, items: [[1], 2]}]\n"},
		{"half qualified", "categories: [{name: a, items: [1]}]\nrules: [{op: match, items: [{category: a}, 2]}]\n"},
		{"question without category", "categories: [{name: a, items: [1]}]\nquestions: [{item: 1}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestSolveExamples(t *testing.T) {
	tests := []struct {
		file    string
		answers map[any]any
	}{
		{"zebra.yaml", map[any]any{"zebra": "Japanese", "water": "Norwegian"}},
		{"lineup.yaml", map[any]any{"Sören": 2, "Valerie": "Poloshirt", 4: 35}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := Load(filepath.Join("..", "..", "examples", "puzzles", tt.file))
			require.NoError(t, err)

			res, err := Solve(doc)
			require.NoError(t, err)
			assert.True(t, res.Solved)
			assert.False(t, res.Contradicted())
			assert.Equal(t, res.Solver.Edges(), res.Edges)
			assert.Len(t, res.Removed, len(doc.Rules))

			total := 0
			for _, n := range res.Removed {
				total += n
			}
			assert.Equal(t, 375-75, total)

			require.Len(t, res.Answers, len(tt.answers))
			for _, a := range res.Answers {
				require.True(t, a.Found, "%v", a.Item)
				assert.Equal(t, tt.answers[a.Item], a.Label, "%v", a.Item)
			}
		})
	}
}

func TestSolveReportsRuleErrors(t *testing.T) {
	doc, err := Parse([]byte(`
categories:
  - {name: a, items: [x, y]}
  - {name: b, items: [x, z]}
rules:
  - {op: match, items: [y, z]}
  - {op: match, items: [x, z]}
`))
	require.NoError(t, err)
	_, err = Solve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, elimination.ErrAmbiguous)
	assert.Contains(t, err.Error(), "rule 2 (match)")
}

func TestSolveUnresolved(t *testing.T) {
	doc, err := Parse([]byte(`
categories:
  - {name: a, items: [a1, a2, a3]}
  - {name: b, items: [b1, b2, b3]}
rules:
  - {op: unmatch, items: [a1, b1]}
  - {op: unmatch, items: [a1, b2]}
  - {op: unmatch, items: [a1, b3]}
questions:
  - {item: a2, category: b}
`))
	require.NoError(t, err)
	res, err := Solve(doc)
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.True(t, res.Contradicted())
	assert.Contains(t, res.Problems, "(a, a1) has no b")
	require.Len(t, res.Answers, 1)
	assert.False(t, res.Answers[0].Found)
	assert.Equal(t, []any{"b1", "b2"}, res.Answers[0].Candidates)
}

func TestApplyChecksShape(t *testing.T) {
	s, err := elimination.FromColumns([]string{"a", "b"}, [][]any{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = Apply(s, Rule{Op: OpLessThan, Items: []Ref{{Label: 1}, {Label: 3}}})
	assert.Error(t, err, "missing category")
	_, err = Apply(s, Rule{Op: OpUnmatch, Items: []Ref{{Label: 1}, {Label: 2}, {Label: 3}}})
	assert.Error(t, err, "too many items")
	_, err = Apply(s, Rule{Op: OpMatch, Items: []Ref{{Label: 1}}})
	assert.Error(t, err, "too few items")

	n, err := Apply(s, Rule{Op: OpAdjacentTo, Items: []Ref{{Label: 1}, {Label: 3}}, Category: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, s.Solved())
}
