package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, calls *atomic.Int32) {
	t.Helper()
	w, err := New(Config{
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnChange: func() { calls.Add(1) },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
}

func TestWatcherDebouncesFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editors: {}\n"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("editors: {}\n# edit\n"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editors: {}\n"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte("x: 1\n"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.Zero(t, calls.Load())
}

func TestWatcherDirectoryFiltersExtensions(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.Zero(t, calls.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "light.json"), []byte(`{"editors":{}}`), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherSkipsIgnoredFiles(t *testing.T) {
	dir := t.TempDir()
	card := filepath.Join(dir, "card.yaml")

	w, err := New(Config{Path: dir, OnChange: func() {}, Ignore: []string{card}})
	require.NoError(t, err)
	require.False(t, w.relevant(card))
	require.True(t, w.relevant(filepath.Join(dir, "editors.yaml")))

	var calls atomic.Int32
	wr, err := New(Config{
		Path:     dir,
		Debounce: 20 * time.Millisecond,
		OnChange: func() { calls.Add(1) },
		Ignore:   []string{card},
	})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- wr.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(card, []byte("mode: auto\n"), 0o644))
	time.Sleep(150 * time.Millisecond)
	require.Zero(t, calls.Load())
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{OnChange: func() {}})
	require.Error(t, err)

	_, err = New(Config{Path: t.TempDir()})
	require.Error(t, err)

	_, err = New(Config{Path: filepath.Join(t.TempDir(), "missing.yaml"), OnChange: func() {}})
	require.ErrorIs(t, err, os.ErrNotExist)
}
