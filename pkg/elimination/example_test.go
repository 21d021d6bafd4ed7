package elimination_test

import (
	"fmt"

	"github.com/gitrdm/elimination/pkg/elimination"
)

// ExampleSolver_Match shows how a single match resolves a small puzzle
// by elimination.
func ExampleSolver_Match() {
	s, _ := elimination.FromColumns(
		[]string{"nationality", "color"},
		[][]any{{"Englishman", "Spaniard"}, {"red", "green"}},
	)
	fmt.Println("edges:", s.Edges())

	removed, _ := s.Match("Englishman", "red")
	color, _, _ := s.CategoryFor("Spaniard", "color")
	fmt.Println("removed:", removed)
	fmt.Println("Spaniard:", color)
	fmt.Println("solved:", s.Solved())

	// Output:
	// edges: 4
	// removed: 2
	// Spaniard: green
	// solved: true
}

// ExampleSolver_LessThan demonstrates an ordering rule that stays active
// until later rules resolve it.
func ExampleSolver_LessThan() {
	s, _ := elimination.New([]elimination.Category{
		{Name: "position", Items: []any{1, 2, 3}},
		{Name: "name", Items: []any{"Ann", "Bob", "Cid"}},
	})

	// Ann stands directly in front of Bob.
	s.LessThan("Ann", "Bob", "position", elimination.At(1))
	ann, _ := s.AvailableFor("Ann", "position")
	bob, _ := s.AvailableFor("Bob", "position")
	fmt.Println("Ann:", ann, "Bob:", bob, "pending:", s.AssertionCount())

	s.Match("Cid", 1)
	pos, _, _ := s.CategoryFor("Bob", "position")
	fmt.Println("Bob:", pos, "pending:", s.AssertionCount())

	// Output:
	// Ann: [1 2] Bob: [2 3] pending: 1
	// Bob: 3 pending: 0
}

// ExampleSolver_Check shows how a contradiction is reported.
func ExampleSolver_Check() {
	s, _ := elimination.FromColumns(
		[]string{"A", "B"},
		[][]any{{"a1", "a2"}, {"b1", "b2"}},
	)
	s.Unmatch("a1", "b1")
	s.Unmatch("a1", "b2")
	fmt.Println(s.Check())

	// Output:
	// contradiction: (A, a1) has no B, (B, b2) has no A
}
