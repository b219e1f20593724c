package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncedRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bundlebuilder.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0o600))

	var runs atomic.Int32
	var running atomic.Bool
	var overlapped atomic.Bool
	w, err := New([]string{cfg}, func(context.Context) error {
		if !running.CompareAndSwap(false, true) {
			overlapped.Store(true)
		}
		defer running.Store(false)
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.WithDebounce(100 * time.Millisecond).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	for i := range 3 {
		require.NoError(t, os.WriteFile(cfg, []byte{byte('b' + i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.False(t, overlapped.Load())
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "c.yaml")
	w, err := New([]string{cfg}, func(context.Context) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func TestWatcher_PeriodicRuns(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "c.yaml")
	var runs atomic.Int32
	w, err := New([]string{cfg}, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.WithInterval(100 * time.Millisecond).WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	startWatcher(t, w)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_TriggerCoalesces(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "c.yaml")
	release := make(chan struct{})
	var runs atomic.Int32
	w, err := New([]string{cfg}, func(context.Context) error {
		runs.Add(1)
		<-release
		return nil
	})
	require.NoError(t, err)
	w.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	startWatcher(t, w)

	w.Trigger()
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
	// The first run is blocked; these collapse into a single pending run.
	w.Trigger()
	w.Trigger()
	w.Trigger()
	close(release)

	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(2), runs.Load())
}
