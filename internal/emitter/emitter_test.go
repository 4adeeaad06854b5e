package emitter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/filestorm/internal/input/keymap"
	"github.com/dshills/filestorm/internal/message"
	"github.com/dshills/filestorm/internal/register"
	"github.com/dshills/filestorm/internal/task"
	"github.com/dshills/filestorm/internal/watch"
)

func newTestEmitter(t *testing.T) (*Emitter, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)

	watcher, err := watch.New()
	if err != nil {
		t.Fatal(err)
	}

	reg, err := register.Open(filepath.Join(t.TempDir(), "register"))
	if err != nil {
		t.Fatal(err)
	}

	e := New(screen, keymap.Default(), watcher, reg, task.Options{})
	t.Cleanup(func() { e.Shutdown() })
	return e, screen
}

// waitFor drains batches until one message satisfies the predicate.
func waitFor(t *testing.T, e *Emitter, what string, match func(message.Message) bool) message.Message {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-e.Messages():
			for _, msg := range batch {
				if match(msg) {
					return msg
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
			return nil
		}
	}
}

func TestStartEmitsInitialNavigation(t *testing.T) {
	e, _ := newTestEmitter(t)
	dir := t.TempDir()
	e.Start(dir)

	msg := waitFor(t, e, "NavigateToPath", func(m message.Message) bool {
		_, ok := m.(message.NavigateToPath)
		return ok
	})
	if nav := msg.(message.NavigateToPath); nav.Path != dir {
		t.Errorf("NavigateToPath.Path = %q, want %q", nav.Path, dir)
	}
}

func TestKeyEventsResolve(t *testing.T) {
	e, screen := newTestEmitter(t)
	e.Start(t.TempDir())

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)

	msg := waitFor(t, e, "MoveCursor", func(m message.Message) bool {
		_, ok := m.(message.MoveCursor)
		return ok
	})
	move := msg.(message.MoveCursor)
	if move.Count != 1 || move.Direction != message.DirDown {
		t.Errorf("MoveCursor = %+v", move)
	}
}

func TestPendingChordReported(t *testing.T) {
	e, screen := newTestEmitter(t)
	e.Start(t.TempDir())

	screen.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	waitFor(t, e, "pending chord", func(m message.Message) bool {
		seq, ok := m.(message.KeySequenceChanged)
		return ok && seq.Sequence == "g"
	})

	screen.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	var sawMove, sawCleared bool
	waitFor(t, e, "chord resolution", func(m message.Message) bool {
		switch m := m.(type) {
		case message.MoveCursor:
			if m.Direction == message.DirTop {
				sawMove = true
			}
		case message.KeySequenceChanged:
			if m.Sequence == "" {
				sawCleared = true
			}
		}
		return sawMove && sawCleared
	})
}

func TestSuspendPreservesResolverState(t *testing.T) {
	e, screen := newTestEmitter(t)
	e.Start(t.TempDir())

	screen.InjectKey(tcell.KeyRune, '3', tcell.ModNone)
	waitFor(t, e, "count digit", func(m message.Message) bool {
		seq, ok := m.(message.KeySequenceChanged)
		return ok && seq.Sequence == "3"
	})

	e.Suspend()
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)

	// Nothing but stray resizes may surface while suspended.
	select {
	case batch := <-e.Messages():
		for _, msg := range batch {
			if _, ok := msg.(message.Resize); !ok {
				t.Fatalf("message while suspended: %+v", msg)
			}
		}
	case <-time.After(200 * time.Millisecond):
	}

	e.Resume()
	msg := waitFor(t, e, "count applied after resume", func(m message.Message) bool {
		_, ok := m.(message.MoveCursor)
		return ok
	})
	move := msg.(message.MoveCursor)
	if move.Count != 3 || move.Direction != message.DirDown {
		t.Errorf("MoveCursor after resume = %+v, want count 3 down", move)
	}
}

func TestSuspendTwiceIsHarmless(t *testing.T) {
	e, screen := newTestEmitter(t)
	e.Start(t.TempDir())

	e.Suspend()
	e.Suspend()
	e.Resume()

	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)
	waitFor(t, e, "input after double suspend", func(m message.Message) bool {
		move, ok := m.(message.MoveCursor)
		return ok && move.Direction == message.DirUp
	})
}

func TestWatchEventsFlowThrough(t *testing.T) {
	e, _ := newTestEmitter(t)
	dir := t.TempDir()
	e.Start(dir)

	if err := e.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	path := filepath.Join(dir, "appeared.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := waitFor(t, e, "PathsAdded", func(m message.Message) bool {
		_, ok := m.(message.PathsAdded)
		return ok
	})
	added := msg.(message.PathsAdded)
	if len(added.Paths) != 1 || added.Paths[0] != path {
		t.Errorf("PathsAdded = %+v", added)
	}
}

func TestTaskMessagesFlowThrough(t *testing.T) {
	e, _ := newTestEmitter(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.Start(dir)

	if err := e.Run(task.EnumerateDirectory{Path: dir}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	waitFor(t, e, "EnumerationFinished", func(m message.Message) bool {
		fin, ok := m.(message.EnumerationFinished)
		return ok && fin.Path == dir
	})
}

// Shutdown must unblock a consumer ranging over Messages.
func TestShutdownClosesMessages(t *testing.T) {
	e, _ := newTestEmitter(t)
	e.Start(t.TempDir())

	drained := make(chan struct{})
	go func() {
		for range e.Messages() {
		}
		close(drained)
	}()

	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer still blocked on Messages after Shutdown")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	e, _ := newTestEmitter(t)
	e.Start(t.TempDir())

	if err := e.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
}
