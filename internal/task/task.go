// Package task runs file system operations in the background. Each task
// carries an identity key; starting a task replaces any running task with
// the same identity.
package task

import (
	"fmt"

	"github.com/dshills/filestorm/internal/history"
	"github.com/dshills/filestorm/internal/message"
	"github.com/dshills/filestorm/internal/register"
)

// Task is one background operation. Implementations are the only task
// variants; the interface is sealed.
type Task interface {
	// Identity keys the task for deduplication. Two tasks targeting the
	// same work share an identity.
	Identity() string

	isTask()
}

// AddPath creates a file, or a directory when the path has a trailing
// separator. Intermediate directories are created as needed.
type AddPath struct {
	Path string
}

// DeletePath removes the path and anything under it.
type DeletePath struct {
	Path string
}

// RenamePath moves Old to New.
type RenamePath struct {
	Old string
	New string
}

// EnumerateDirectory reads a directory and reports its entries in growing
// batches.
type EnumerateDirectory struct {
	Path string
}

// LoadPreview reads the head of a text file for display.
type LoadPreview struct {
	Path string
}

// EmitMessages forwards messages produced outside the input pipeline.
type EmitMessages struct {
	Messages []message.Message
}

// SaveHistory appends the session's new history entries to the cache file.
type SaveHistory struct {
	History *history.History
}

// OptimizeHistory rewrites the history cache dropping dead paths.
type OptimizeHistory struct{}

// YankPath archives a path into the register.
type YankPath struct {
	Entry register.Entry
}

// TrashPath archives a path into the register and removes the original.
type TrashPath struct {
	Entry register.Entry
}

// RestorePath unpacks a register entry to a target directory.
type RestorePath struct {
	Entry register.Entry
	Path  string
}

// DeleteRegisterEntry drops an entry from the register.
type DeleteRegisterEntry struct {
	Entry register.Entry
}

func (t AddPath) Identity() string            { return "add-path:" + t.Path }
func (t DeletePath) Identity() string         { return "delete-path:" + t.Path }
func (t RenamePath) Identity() string         { return "rename-path:" + t.Old + ":" + t.New }
func (t EnumerateDirectory) Identity() string { return "enumerate:" + t.Path }
func (t LoadPreview) Identity() string        { return "preview:" + t.Path }
func (t EmitMessages) Identity() string       { return fmt.Sprintf("emit:%v", t.Messages) }
func (t SaveHistory) Identity() string        { return "save-history" }
func (t OptimizeHistory) Identity() string    { return "optimize-history" }
func (t YankPath) Identity() string           { return "yank:" + t.Entry.ID }
func (t TrashPath) Identity() string          { return "trash:" + t.Entry.ID }
func (t RestorePath) Identity() string        { return "restore:" + t.Entry.ID + ":" + t.Path }
func (t DeleteRegisterEntry) Identity() string {
	return "delete-register-entry:" + t.Entry.ID
}

func (AddPath) isTask()             {}
func (DeletePath) isTask()          {}
func (RenamePath) isTask()          {}
func (EnumerateDirectory) isTask()  {}
func (LoadPreview) isTask()         {}
func (EmitMessages) isTask()        {}
func (SaveHistory) isTask()         {}
func (OptimizeHistory) isTask()     {}
func (YankPath) isTask()            {}
func (TrashPath) isTask()           {}
func (RestorePath) isTask()         {}
func (DeleteRegisterEntry) isTask() {}

// Name returns a short label for logs and error messages.
func Name(t Task) string {
	switch t.(type) {
	case AddPath:
		return "add path"
	case DeletePath:
		return "delete path"
	case RenamePath:
		return "rename path"
	case EnumerateDirectory:
		return "enumerate directory"
	case LoadPreview:
		return "load preview"
	case EmitMessages:
		return "emit messages"
	case SaveHistory:
		return "save history"
	case OptimizeHistory:
		return "optimize history"
	case YankPath:
		return "yank path"
	case TrashPath:
		return "trash path"
	case RestorePath:
		return "restore path"
	case DeleteRegisterEntry:
		return "delete register entry"
	default:
		return "unknown"
	}
}
