package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/elimination/pkg/elimination"
)

func smallSolver(t *testing.T) *elimination.Solver {
	t.Helper()
	s, err := elimination.FromColumns(
		[]string{"position", "name", "color"},
		[][]any{{1, 2, 3}, {"Ann", "Bob", "Cid"}, {"red", "green", "blue"}},
	)
	require.NoError(t, err)
	return s
}

func TestCell(t *testing.T) {
	s := smallSolver(t)
	_, err := s.Match("Ann", 1)
	require.NoError(t, err)

	cell, err := Cell(s, 1, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", cell)

	cell, err = Cell(s, 2, "name")
	require.NoError(t, err)
	assert.Equal(t, "Bob|Cid", cell)

	_, err = Cell(s, 1, "size")
	assert.ErrorIs(t, err, elimination.ErrUnknown)
}

func TestGrid(t *testing.T) {
	s := smallSolver(t)
	_, err := s.Match("Ann", 1)
	require.NoError(t, err)
	_, err = s.Match("Bob", "green")
	require.NoError(t, err)

	out, err := Grid(s, NewStyles(false))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4, "header and three rows")
	for _, want := range []string{"position", "name", "color", "Ann", "Bob|Cid", "red|blue"} {
		assert.Contains(t, out, want)
	}
}

func TestSummary(t *testing.T) {
	s := smallSolver(t)
	assert.Equal(t, "demo: unsolved, 27 edges, 0 pending assertions", Summary("demo", s, NewStyles(false)))

	_, err := s.Unmatch("Ann", "red")
	require.NoError(t, err)
	_, err = s.Unmatch("Ann", "green")
	require.NoError(t, err)
	_, err = s.Unmatch("Ann", "blue")
	require.NoError(t, err)
	assert.Contains(t, Summary("demo", s, NewStyles(false)), "contradiction")
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, UseColor(ColorAlways, &buf))
	assert.False(t, UseColor(ColorNever, &buf))
	assert.False(t, UseColor(ColorAuto, &buf), "buffers are never terminals")
}
