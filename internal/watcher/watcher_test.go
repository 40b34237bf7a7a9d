package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/antopolskiy/taskboard/internal/watcher"
)

func startWatcher(t *testing.T, dir string, match func(string) bool) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	w, err := watcher.New([]string{dir}, match, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	// Give the watcher time to start.
	time.Sleep(50 * time.Millisecond)
	return &calls
}

func waitFor(t *testing.T, calls *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls.Load() >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("callback calls = %d, want %d", calls.Load(), want)
}

func TestWatcher_StoreWriteTriggersCallback(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, watcher.Names("tasks.json", "user.json"))

	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, calls, 1)
}

func TestWatcher_RenameIntoPlaceTriggersCallback(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, watcher.Names("tasks.json"))

	tmp := filepath.Join(dir, ".tasks.json.tmp")
	if err := os.WriteFile(tmp, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, "tasks.json")); err != nil {
		t.Fatal(err)
	}
	waitFor(t, calls, 1)
}

func TestWatcher_UnmatchedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, watcher.Names("tasks.json"))

	for _, name := range []string{"taskboard.log", "activity.jsonl", ".store.lock"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback calls = %d, want 0", got)
	}
}

func TestWatcher_BurstIsDebounced(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, nil)

	path := filepath.Join(dir, "tasks.json")
	for range 5 {
		if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, calls, 1)
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback calls = %d, want 1 for a burst", got)
	}
}

func TestWatcher_NewFailsOnMissingPath(t *testing.T) {
	_, err := watcher.New([]string{t.TempDir(), "/nonexistent/path"}, nil, func() {})
	if err == nil {
		t.Fatal("expected error when one path is invalid")
	}
}

func TestWatcher_RunReturnsAfterClose(t *testing.T) {
	w, err := watcher.New([]string{t.TempDir()}, nil, func() {})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestNames(t *testing.T) {
	match := watcher.Names("user.json", "tasks.json")
	for name, want := range map[string]bool{
		"user.json":      true,
		"tasks.json":     true,
		"tasks.json.tmp": false,
		"store.db":       false,
	} {
		if got := match(name); got != want {
			t.Errorf("match(%q) = %v, want %v", name, got, want)
		}
	}
}
