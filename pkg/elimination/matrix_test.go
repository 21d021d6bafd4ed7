package elimination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariants(t *testing.T, x *matrix) {
	t.Helper()
	for p := 0; p < x.size(); p++ {
		require.True(t, x.linked(p, p), "diagonal of %d", p)
		for q := 0; q < x.size(); q++ {
			require.Equal(t, x.linked(p, q), x.linked(q, p), "symmetry of %d, %d", p, q)
			if p != q && x.home(p) == x.home(q) {
				require.False(t, x.linked(p, q), "same category link %d, %d", p, q)
			}
		}
	}
}

func TestMatrixInitialState(t *testing.T) {
	tests := []struct {
		m, n  int
		edges int
	}{
		{1, 4, 0},
		{2, 2, 4},
		{3, 2, 12},
		{6, 5, 375},
		{4, 20, 2400},
	}
	for _, tt := range tests {
		x := newMatrix(tt.m, tt.n)
		checkInvariants(t, x)
		assert.Equal(t, tt.edges, x.edges(), "%dx%d", tt.m, tt.n)
		assert.Equal(t, tt.m == 1, x.solved(), "%dx%d", tt.m, tt.n)
	}
}

func TestMatrixUnlinkAndReset(t *testing.T) {
	x := newMatrix(3, 2)
	assert.Equal(t, []int{2, 3}, x.linkedIn(0, 1).positions())
	assert.Equal(t, 2, x.countIn(0, 2))
	assert.Equal(t, 1, x.countIn(0, 0))

	x.unlink(0, 2)
	checkInvariants(t, x)
	assert.False(t, x.linked(0, 2))
	assert.False(t, x.linked(2, 0))
	assert.Equal(t, 11, x.edges())
	assert.Equal(t, []int{3}, x.linkedIn(0, 1).positions())

	x.reset()
	checkInvariants(t, x)
	assert.Equal(t, 12, x.edges())
}

func TestMatrixSolved(t *testing.T) {
	x := newMatrix(2, 2)
	assert.False(t, x.solved())
	x.unlink(0, 3)
	x.unlink(1, 2)
	assert.True(t, x.solved())
	assert.Equal(t, 2, x.edges())
}
