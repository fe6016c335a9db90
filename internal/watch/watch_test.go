package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewRequiresRebuild(t *testing.T) {
	if _, err := New(Options{Dir: t.TempDir()}, nil); !errors.Is(err, ErrRebuildRequired) {
		t.Fatalf("expected ErrRebuildRequired, got %v", err)
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(Options{Dir: t.TempDir(), Pattern: "README[.md"}, func(context.Context, []string) error { return nil })
	if err == nil {
		t.Fatal("expected invalid pattern error")
	}
}

func TestMatchesFiltersByPatternAndOp(t *testing.T) {
	w := &Watcher{opts: Options{Pattern: "README*.md"}}
	cases := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/src/README.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/src/README-zh.md", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/src/README.md", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/src/README.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/src/notes.md", Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		if got := w.matches(tc.event); got != tc.want {
			t.Fatalf("matches(%v) = %v, want %v", tc.event, got, tc.want)
		}
	}
}

func TestDrainReturnsSortedPathsAndResets(t *testing.T) {
	w := &Watcher{pending: map[string]struct{}{"b": {}, "a": {}}}
	got := w.drain()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected drain %v", got)
	}
	if len(w.drain()) != 0 {
		t.Fatal("expected pending set to be reset")
	}
}

func TestRunRebuildsOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Awesome Mac\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	calls := make(chan []string, 4)
	w, err := New(Options{Dir: dir, Debounce: 50 * time.Millisecond}, func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(readme, []byte("# Awesome Mac\n\nedit\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write ignored: %v", err)
	}

	select {
	case changed := <-calls:
		if len(changed) != 1 || changed[0] != readme {
			t.Fatalf("expected only %s, got %v", readme, changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
