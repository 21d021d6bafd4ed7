package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/elimination/pkg/elimination"
)

func TestObserve(t *testing.T) {
	r := New()
	r.Observe("zebra", StatusSolved, elimination.Stats{Rules: 14, EdgesRemoved: 300, PeakQueue: 9, AssertionsRegistered: 4}, 75, 0.002)
	r.Observe("lineup", StatusUnsolved, elimination.Stats{Rules: 15, EdgesRemoved: 116, PeakQueue: 5}, 259, 0.001)
	r.Failed()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Puzzles.WithLabelValues(StatusSolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Puzzles.WithLabelValues(StatusUnsolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Puzzles.WithLabelValues(StatusError)))
	assert.Equal(t, 29.0, testutil.ToFloat64(r.Rules))
	assert.Equal(t, 416.0, testutil.ToFloat64(r.EdgesRemoved))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.Assertions))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.PeakQueue))
	assert.Equal(t, 259.0, testutil.ToFloat64(r.RemainingEdges.WithLabelValues("lineup")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Observe("zebra", StatusSolved, elimination.Stats{Rules: 14}, 75, 0.001)

	path := filepath.Join(t.TempDir(), "elimination.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `elimination_puzzles_total{status="solved"} 1`), text)
	assert.Contains(t, text, "elimination_rules_total 14")
	assert.Contains(t, text, `elimination_remaining_edges{puzzle="zebra"} 75`)
}
