// Package app owns the program lifecycle: it wires the emitter over a
// terminal screen, drains message batches, and keeps the view state those
// messages describe.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/filestorm/internal/config"
	"github.com/dshills/filestorm/internal/emitter"
	"github.com/dshills/filestorm/internal/history"
	"github.com/dshills/filestorm/internal/input/keymap"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/log"
	"github.com/dshills/filestorm/internal/message"
	"github.com/dshills/filestorm/internal/register"
	"github.com/dshills/filestorm/internal/task"
	"github.com/dshills/filestorm/internal/watch"
)

// ErrQuit reports a normal user-requested exit.
var ErrQuit = errors.New("app: quit")

// Options configure a run.
type Options struct {
	ConfigPath string
	Path       string
	LogLevel   string
}

// App drives the main loop.
type App struct {
	emitter *emitter.Emitter
	screen  tcell.Screen
	history *history.History

	path     string
	mode     mode.Mode
	sequence string
	status   string
	cmdline  string

	entries []message.DirEntry
	cursor  int
	offset  int

	preview     []string
	previewPath string

	width  int
	height int
}

// New builds the application from its options. The screen is not owned
// until Run.
func New(screen tcell.Screen, opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if cfg.Log.Path != "" {
		if err := log.Init(cfg.Log.Path, cfg.Log.Level); err != nil {
			return nil, err
		}
	}

	tree := keymap.Default()
	if cfg.Keys.Script != "" {
		if err := config.ApplyKeymapScript(tree, cfg.Keys.Script); err != nil {
			return nil, err
		}
	}

	watcher, err := watch.New()
	if err != nil {
		return nil, err
	}

	reg, err := register.OpenDefault()
	if err != nil {
		return nil, err
	}

	hist := history.New()
	if histPath, err := history.Path(); err == nil {
		if err := history.Load(hist, histPath); err != nil {
			log.WithError(err).Debugf("no history cache")
		}
	}

	path := opts.Path
	if path == "" {
		path, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	em := emitter.New(screen, tree, watcher, reg, task.Options{
		BatchSize:    cfg.Tasks.BatchSize,
		Ignore:       cfg.Tasks.Ignore,
		PreviewLines: cfg.Tasks.PreviewLines,
		Concurrency:  cfg.Tasks.Concurrency,
	})

	return &App{
		emitter: em,
		screen:  screen,
		history: hist,
		path:    path,
		mode:    mode.Default(),
	}, nil
}

// Run drains message batches until a quit is requested. It returns ErrQuit
// on a clean exit so callers can tell it apart from failures.
func (a *App) Run() error {
	a.width, a.height = a.screen.Size()
	a.emitter.Start(a.path)

	for batch := range a.emitter.Messages() {
		quit := false
		for _, msg := range batch {
			if a.update(msg) {
				quit = true
			}
		}
		if quit {
			break
		}
		a.draw()
	}

	a.runTask(task.SaveHistory{History: a.history})
	if err := a.emitter.Shutdown(); err != nil {
		return err
	}
	return ErrQuit
}

// Shutdown releases the emitter's sources. Safe to call more than once.
func (a *App) Shutdown() {
	if err := a.emitter.Shutdown(); err != nil {
		log.WithError(err).Errorf("shutdown")
	}
}

// update applies one message and reports whether the program should quit.
func (a *App) update(msg message.Message) bool {
	switch msg := msg.(type) {
	case message.QuitRequested:
		return true

	case message.NavigateToPath:
		a.navigate(msg.Path)

	case message.NavigateToParent:
		parent := filepath.Dir(a.path)
		if parent != a.path {
			a.navigate(parent)
		}

	case message.NavigateToSelected:
		a.openSelected()

	case message.ModeChanged:
		a.mode = msg.Mode
		if a.mode != mode.Command {
			a.cmdline = ""
		}

	case message.KeySequenceChanged:
		a.sequence = msg.Sequence

	case message.MoveCursor:
		a.moveCursor(msg.Count, msg.Direction)

	case message.MoveViewPort:
		a.moveViewPort(msg.Direction)

	case message.TextModified:
		a.modifyText(msg.Count, msg.Modification)

	case message.ExecuteCommand:
		return a.executeCommand()

	case message.EnumerationChanged:
		if msg.Path == a.path {
			a.entries = msg.Entries
			a.clampCursor()
		}

	case message.EnumerationFinished:
		if msg.Path == a.path {
			a.status = fmt.Sprintf("%d entries", len(a.entries))
		}

	case message.PreviewLoaded:
		a.previewPath = msg.Path
		a.preview = msg.Lines

	case message.PathsAdded, message.PathRemoved, message.PathsWriteFinished:
		// The directory contents changed under us; re-read it.
		a.runTask(task.EnumerateDirectory{Path: a.path})

	case message.Resize:
		a.width, a.height = msg.Width, msg.Height
		a.screen.Sync()

	case message.TaskError:
		a.status = fmt.Sprintf("%s failed: %v", msg.Task, msg.Err)
	}
	return false
}

// navigate switches the displayed directory, moving the watch registration
// with it.
func (a *App) navigate(path string) {
	if a.path != "" && a.path != path {
		if err := a.emitter.Unwatch(a.path); err != nil && !errors.Is(err, watch.ErrNotWatched) {
			log.WithError(err).Debugf("unwatch %s", a.path)
		}
	}

	a.path = path
	a.entries = nil
	a.cursor = 0
	a.offset = 0
	a.preview = nil
	a.previewPath = ""
	a.history.Add(path)

	if err := a.emitter.Watch(path); err != nil {
		log.WithError(err).Warnf("watch %s", path)
	}
	a.runTask(task.EnumerateDirectory{Path: path})
}

func (a *App) openSelected() {
	entry, ok := a.selected()
	if !ok {
		return
	}
	target := filepath.Join(a.path, entry.Name)
	if entry.Kind == message.KindDirectory {
		a.navigate(target)
		return
	}
	a.runTask(task.LoadPreview{Path: target})
}

func (a *App) selected() (message.DirEntry, bool) {
	if a.cursor < 0 || a.cursor >= len(a.entries) {
		return message.DirEntry{}, false
	}
	return a.entries[a.cursor], true
}

func (a *App) moveCursor(count int, dir message.CursorDirection) {
	if count < 1 {
		count = 1
	}
	switch dir {
	case message.DirUp:
		a.cursor -= count
	case message.DirDown:
		a.cursor += count
	case message.DirTop, message.DirLineStart:
		a.cursor = 0
	case message.DirBottom, message.DirLineEnd:
		a.cursor = len(a.entries) - 1
	case message.DirLeft:
		a.update(message.NavigateToParent{})
		return
	case message.DirRight:
		a.openSelected()
		return
	}
	a.clampCursor()
}

func (a *App) moveViewPort(dir message.ViewPortDirection) {
	page := a.listHeight() / 2
	switch dir {
	case message.ViewHalfPageUp:
		a.cursor -= page
	case message.ViewHalfPageDown:
		a.cursor += page
	case message.ViewTopOnCursor:
		a.offset = a.cursor
	case message.ViewCenterOnCursor:
		a.offset = a.cursor - a.listHeight()/2
	case message.ViewBottomOnCursor:
		a.offset = a.cursor - a.listHeight() + 1
	}
	if a.offset < 0 {
		a.offset = 0
	}
	a.clampCursor()
}

func (a *App) modifyText(count int, mod message.Modification) {
	if count < 1 {
		count = 1
	}
	switch mod := mod.(type) {
	case message.InsertText:
		if a.mode == mode.Command {
			a.cmdline += mod.Text
		}
	case message.DeleteCharBefore:
		if a.mode == mode.Command {
			for i := 0; i < count && len(a.cmdline) > 0; i++ {
				a.cmdline = a.cmdline[:len(a.cmdline)-1]
			}
		}
	case message.DeleteLine:
		if entry, ok := a.selected(); ok {
			target := filepath.Join(a.path, entry.Name)
			a.runTask(task.TrashPath{Entry: register.NewEntry(target)})
		}
	}
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.entries) {
		a.cursor = len(a.entries) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if h := a.listHeight(); h > 0 && a.cursor >= a.offset+h {
		a.offset = a.cursor - h + 1
	}
}

func (a *App) listHeight() int {
	// One row for the path header and one for the status line.
	h := a.height - 2
	if h < 1 {
		return 1
	}
	return h
}
