package app

import (
	"path/filepath"
	"strings"

	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/register"
	"github.com/dshills/filestorm/internal/task"
)

// executeCommand runs the command line and returns true when the command
// quits the program. Unknown commands report on the status line.
func (a *App) executeCommand() bool {
	line := strings.TrimSpace(a.cmdline)
	a.cmdline = ""
	a.mode = mode.Navigation
	a.emitter.SetCurrentMode(mode.Navigation)

	if line == "" {
		return false
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit":
		return true

	case "add":
		if arg == "" {
			a.status = "add: missing path"
			return false
		}
		a.runTask(task.AddPath{Path: a.resolve(arg)})

	case "delete":
		if entry, ok := a.selected(); ok {
			a.runTask(task.DeletePath{Path: filepath.Join(a.path, entry.Name)})
		}

	case "rename":
		if arg == "" {
			a.status = "rename: missing name"
			return false
		}
		if entry, ok := a.selected(); ok {
			a.runTask(task.RenamePath{
				Old: filepath.Join(a.path, entry.Name),
				New: a.resolve(arg),
			})
		}

	case "yank":
		if entry, ok := a.selected(); ok {
			target := filepath.Join(a.path, entry.Name)
			a.runTask(task.YankPath{Entry: register.NewEntry(target)})
		}

	case "optimize-history":
		a.runTask(task.OptimizeHistory{})

	default:
		a.status = "unknown command: " + name
	}
	return false
}

func (a *App) runTask(t task.Task) {
	if err := a.emitter.Run(t); err != nil {
		a.status = err.Error()
	}
}

// resolve turns a command argument into an absolute path, keeping a
// trailing separator so directory creation still works.
func (a *App) resolve(arg string) string {
	trailing := strings.HasSuffix(arg, "/")
	if !filepath.IsAbs(arg) {
		arg = filepath.Join(a.path, arg)
	} else {
		arg = filepath.Clean(arg)
	}
	if trailing {
		arg += "/"
	}
	return arg
}
