package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var puzzles = filepath.Join("..", "..", "examples", "puzzles")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{logger: logrus.New()}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", "--color", "never", filepath.Join(puzzles, "zebra.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "zebra: solved, 75 edges")
	assert.Contains(t, out, "zebra -> nationality: Japanese")
	assert.Contains(t, out, "water -> nationality: Norwegian")
}

func TestSolveCommandContradiction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := `name: bad
categories:
  - {name: a, items: [a1, a2]}
  - {name: b, items: [b1, b2]}
rules:
  - {op: unmatch, items: [a1, b1]}
  - {op: unmatch, items: [a1, b2]}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	out, err := execute(t, "solve", "--color", "never", path)
	assert.ErrorIs(t, err, errContradiction)
	assert.Contains(t, out, "problem: (a, a1) has no b")
}

func TestBatchCommand(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "elimination.prom")
	out, err := execute(t, "batch", "--workers", "2", "--metrics-file", metricsFile,
		filepath.Join(puzzles, "zebra.yaml"),
		filepath.Join(puzzles, "lineup.yaml"),
		filepath.Join(puzzles, "missing.yaml"),
	)
	require.NoError(t, err)

	var rep struct {
		Run     string `json:"run"`
		Workers int    `json:"workers"`
		Entries []struct {
			File   string `json:"file"`
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Run, 36)
	assert.Equal(t, 2, rep.Workers)
	require.Len(t, rep.Entries, 3)
	assert.Equal(t, "solved", rep.Entries[0].Status)
	assert.Equal(t, "solved", rep.Entries[1].Status)
	assert.Equal(t, "error", rep.Entries[2].Status)
	assert.NotEmpty(t, rep.Entries[2].Error)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `elimination_puzzles_total{status="solved"} 2`)
	assert.Contains(t, string(data), `elimination_puzzles_total{status="error"} 1`)
}

func TestInvalidSettings(t *testing.T) {
	_, err := execute(t, "solve", "--color", "sometimes", filepath.Join(puzzles, "zebra.yaml"))
	assert.Error(t, err)

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 0\n"), 0o644))
	_, err = execute(t, "batch", "--config", cfg, filepath.Join(puzzles, "zebra.yaml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "elimination dev\n", out)
}
