package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "puzzle.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	changes := make(chan string, 10)
	w, err := New(quietLogger(), path, 50*time.Millisecond, func(p string) { changes <- p })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('b' + i)}, 0o644))
	}

	select {
	case p := <-changes:
		assert.Equal(t, w.path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst collapses into one call.
	select {
	case p := <-changes:
		t.Fatalf("unexpected second change for %s", p)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(quietLogger(), filepath.Join(t.TempDir(), "missing", "puzzle.yaml"), time.Millisecond, func(string) {})
	assert.Error(t, err)
}
