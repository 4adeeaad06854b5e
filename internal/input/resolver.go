// Package input turns raw key events into semantic messages under the
// modal grammar: multi-key chords, repeat counts, and per-mode fallback for
// unmatched keys.
package input

import (
	"strconv"

	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/input/keymap"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

// Resolver is a pure, synchronous state machine. It is not safe for
// concurrent use; the emitter serializes access behind its resolver lock.
type Resolver struct {
	tree    *keymap.Tree
	mode    mode.Mode
	pending []key.Key
	count   int
	digits  string
}

// NewResolver creates a resolver over the given binding tree, starting in
// the default mode.
func NewResolver(tree *keymap.Tree) *Resolver {
	return &Resolver{tree: tree, mode: mode.Default()}
}

// Mode returns the current modal context.
func (r *Resolver) Mode() mode.Mode {
	return r.mode
}

// SetMode switches the modal context from outside the resolver. Any pending
// sequence and count are discarded; partial chords never leak across a mode
// boundary.
func (r *Resolver) SetMode(m mode.Mode) {
	r.mode = m
	r.reset()
}

// Pending returns the display text of the unresolved input: accumulated
// count digits followed by the pending chord. Empty when nothing is pending.
func (r *Resolver) Pending() string {
	return r.digits + key.Sequence(r.pending)
}

// AddAndResolve appends one key to the pending sequence and resolves it
// against the current mode's binding table. It returns the semantic
// messages produced, which may be none while a chord stays ambiguous.
func (r *Resolver) AddAndResolve(k key.Key) []message.Message {
	r.pending = append(r.pending, k)

	binding, result := r.tree.Find(r.mode, r.pending)
	switch result {
	case keymap.ResultNone:
		return r.resolveUnmatched(k)
	case keymap.ResultPending:
		return nil
	case keymap.ResultBound:
		return r.resolveBinding(binding)
	default:
		return nil
	}
}

// resolveUnmatched handles a key that cannot extend any binding. The
// sequence and count always reset; text-input modes additionally insert
// printable keys literally.
func (r *Resolver) resolveUnmatched(k key.Key) []message.Message {
	r.reset()
	if r.mode.IsTextInput() && k.IsPrintable() {
		return []message.Message{message.TextModified{
			Count:        1,
			Modification: message.InsertText{Text: string(k.Rune)},
		}}
	}
	return nil
}

func (r *Resolver) resolveBinding(b keymap.Binding) []message.Message {
	switch bound := b.(type) {
	case keymap.Repeat:
		r.extendCount(bound.Digit)
		return nil

	case keymap.RepeatOrMotion:
		if r.count > 0 {
			r.extendCount(bound.Digit)
			return nil
		}
		return r.resolveMotion(bound.Direction)

	case keymap.Motion:
		return r.resolveMotion(bound.Direction)

	case keymap.ToMessage:
		msg := message.WithCount(bound.Message, r.takeCount())
		r.reset()
		return []message.Message{msg}

	case keymap.ToMode:
		r.mode = bound.Mode
		r.reset()
		return []message.Message{message.ModeChanged{Mode: bound.Mode}}

	case keymap.ModeAndModify:
		count := r.takeCount()
		r.mode = bound.Mode
		r.reset()
		return []message.Message{
			message.ModeChanged{Mode: bound.Mode},
			message.TextModified{Count: count, Modification: bound.Modification},
		}

	default:
		r.reset()
		return nil
	}
}

func (r *Resolver) resolveMotion(dir message.CursorDirection) []message.Message {
	count := r.takeCount()
	r.reset()
	return []message.Message{message.MoveCursor{Count: count, Direction: dir}}
}

// extendCount folds another digit into the accumulating count. The digit's
// binding is consumed, so the chord buffer restarts while the count keeps
// accumulating.
func (r *Resolver) extendCount(digit int) {
	r.count = r.count*10 + digit
	r.digits += strconv.Itoa(digit)
	r.pending = r.pending[:0]
}

// takeCount returns the accumulated count, defaulting to 1.
func (r *Resolver) takeCount() int {
	if r.count == 0 {
		return 1
	}
	return r.count
}

func (r *Resolver) reset() {
	r.pending = r.pending[:0]
	r.count = 0
	r.digits = ""
}
