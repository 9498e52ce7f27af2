package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	changed := make(chan string, 10)
	w, err := New([]string{path}, 50*time.Millisecond, func(_ context.Context, p string) {
		changed <- p
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"title":"x"}`), 0o600))
	}
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o600))

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-changed:
		t.Errorf("unexpected second change: %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Settled(t *testing.T) {
	w := &Watcher{
		files:    map[string]string{"/a/x.json": "x.json", "/a/y.json": "y.json"},
		debounce: time.Second,
		pending:  map[string]time.Time{},
	}
	now := time.Now()
	w.pending["/a/y.json"] = now.Add(-2 * time.Second)
	w.pending["/a/x.json"] = now.Add(-3 * time.Second)

	assert.Equal(t, []string{"x.json", "y.json"}, w.settled(now))
	assert.Empty(t, w.pending)

	w.pending["/a/x.json"] = now
	assert.Empty(t, w.settled(now))
	assert.Len(t, w.pending, 1)
}

func TestWatcher_RecordIgnoresOtherFiles(t *testing.T) {
	abs, err := filepath.Abs("story.json")
	require.NoError(t, err)
	w := &Watcher{
		files:   map[string]string{abs: "story.json"},
		pending: map[string]time.Time{},
	}

	w.record(fsnotify.Event{Name: "other.json", Op: fsnotify.Write})
	w.record(fsnotify.Event{Name: "story.json", Op: fsnotify.Chmod})
	assert.Empty(t, w.pending)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "s.json")}, 0, func(context.Context, string) {}, nil)
	assert.Error(t, err)
}
