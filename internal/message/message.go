// Package message defines the semantic vocabulary exchanged between the
// input-to-action core and the update loop. Every producer (key resolver,
// watch translation, task completion) emits values of the Message sum type;
// the update loop consumes them uniformly.
package message

import (
	"fmt"

	"github.com/dshills/filestorm/internal/input/mode"
)

// Message is the sealed interface over all semantic messages.
type Message interface {
	isMessage()
}

// CursorDirection describes where a motion moves the cursor.
type CursorDirection int

const (
	DirUp CursorDirection = iota
	DirDown
	DirLeft
	DirRight
	DirTop
	DirBottom
	DirLineStart
	DirLineEnd
)

// String returns the direction name.
func (d CursorDirection) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	case DirLineStart:
		return "line-start"
	case DirLineEnd:
		return "line-end"
	default:
		return fmt.Sprintf("CursorDirection(%d)", int(d))
	}
}

// ViewPortDirection describes viewport scrolling.
type ViewPortDirection int

const (
	ViewHalfPageUp ViewPortDirection = iota
	ViewHalfPageDown
	ViewTopOnCursor
	ViewCenterOnCursor
	ViewBottomOnCursor
)

// ContentKind classifies a directory entry.
type ContentKind int

const (
	KindFile ContentKind = iota
	KindDirectory
)

// DirEntry is one entry produced by directory enumeration.
type DirEntry struct {
	Kind ContentKind
	Name string
}

// Modification describes a text change requested on the active buffer. The
// buffer itself is an external collaborator; the core only names the change.
type Modification interface {
	isModification()
}

// InsertText inserts literal text at the cursor.
type InsertText struct{ Text string }

// DeleteCharBefore deletes the character before the cursor.
type DeleteCharBefore struct{}

// DeleteCharOnCursor deletes the character under the cursor.
type DeleteCharOnCursor struct{}

// DeleteLine deletes the line under the cursor.
type DeleteLine struct{}

// LineDirection places a new line relative to the cursor.
type LineDirection int

const (
	LineBelow LineDirection = iota
	LineAbove
)

// InsertLine opens a new line above or below the cursor.
type InsertLine struct{ Direction LineDirection }

func (InsertText) isModification()         {}
func (DeleteCharBefore) isModification()   {}
func (DeleteCharOnCursor) isModification() {}
func (DeleteLine) isModification()         {}
func (InsertLine) isModification()         {}

// ModeChanged reports that the modal context switched.
type ModeChanged struct{ Mode mode.Mode }

// KeySequenceChanged carries the pending key chord for status display; an
// empty sequence means the chord resolved or was discarded.
type KeySequenceChanged struct{ Sequence string }

// MoveCursor moves the cursor Count times in Direction.
type MoveCursor struct {
	Count     int
	Direction CursorDirection
}

// MoveViewPort scrolls the viewport.
type MoveViewPort struct{ Direction ViewPortDirection }

// TextModified applies a buffer modification Count times.
type TextModified struct {
	Count        int
	Modification Modification
}

// ExecuteCommand submits the command line for execution.
type ExecuteCommand struct{}

// NavigateToPath requests navigation to an absolute path.
type NavigateToPath struct{ Path string }

// NavigateToParent selects the parent directory.
type NavigateToParent struct{}

// NavigateToSelected descends into the selected entry.
type NavigateToSelected struct{}

// PathsAdded reports paths that appeared on disk.
type PathsAdded struct{ Paths []string }

// PathRemoved reports a path that disappeared from disk.
type PathRemoved struct{ Path string }

// PathsWriteFinished reports paths whose write access completed.
type PathsWriteFinished struct{ Paths []string }

// EnumerationChanged carries a (possibly partial) directory listing.
type EnumerationChanged struct {
	Path    string
	Entries []DirEntry
}

// EnumerationFinished marks a directory enumeration as complete.
type EnumerationFinished struct{ Path string }

// PreviewLoaded carries the textual preview of a file.
type PreviewLoaded struct {
	Path  string
	Lines []string
}

// Resize reports the new terminal dimensions.
type Resize struct{ Width, Height int }

// QuitRequested asks the application to exit.
type QuitRequested struct{}

// TaskError reports a failed background task.
type TaskError struct {
	Task string
	Err  error
}

func (ModeChanged) isMessage()        {}
func (KeySequenceChanged) isMessage() {}
func (MoveCursor) isMessage()         {}
func (MoveViewPort) isMessage()       {}
func (TextModified) isMessage()       {}
func (ExecuteCommand) isMessage()     {}
func (NavigateToPath) isMessage()     {}
func (NavigateToParent) isMessage()   {}
func (NavigateToSelected) isMessage() {}
func (PathsAdded) isMessage()         {}
func (PathRemoved) isMessage()        {}
func (PathsWriteFinished) isMessage() {}
func (EnumerationChanged) isMessage() {}
func (EnumerationFinished) isMessage() {}
func (PreviewLoaded) isMessage()      {}
func (Resize) isMessage()             {}
func (QuitRequested) isMessage()      {}
func (TaskError) isMessage()          {}

// countable is implemented by messages that honor a repeat count.
type countable interface {
	Message
	withCount(int) Message
}

func (m MoveCursor) withCount(n int) Message {
	m.Count = n
	return m
}

func (m TextModified) withCount(n int) Message {
	m.Count = n
	return m
}

// WithCount attaches an accumulated repeat count to a message when the
// message supports one; other messages pass through unchanged.
func WithCount(m Message, count int) Message {
	if c, ok := m.(countable); ok {
		return c.withCount(count)
	}
	return m
}
