// Package keymap maps key sequences to bindings, one trie per mode.
// Prefix-freedom is not assumed: "g" may be a prefix of "gg" while other
// sequences terminate at depth one.
package keymap

import (
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

// Binding is the sealed variant a resolved key sequence maps to. Bindings
// are resolved exactly once; they are never re-entered after matching.
type Binding interface {
	isBinding()
}

// ToMessage emits a literal semantic message.
type ToMessage struct{ Message message.Message }

// ToMode switches the modal context.
type ToMode struct{ Mode mode.Mode }

// Motion moves the cursor; an accumulated count multiplies it.
type Motion struct{ Direction message.CursorDirection }

// Repeat contributes a digit to the accumulating repeat count.
type Repeat struct{ Digit int }

// RepeatOrMotion is a digit that extends the count while one is already
// accumulating and otherwise resolves immediately as its motion ('0' in
// normal mode: count digit vs line start).
type RepeatOrMotion struct {
	Digit     int
	Direction message.CursorDirection
}

// ModeAndModify switches mode and applies a text modification, in that order.
type ModeAndModify struct {
	Mode         mode.Mode
	Modification message.Modification
}

func (ToMessage) isBinding()      {}
func (ToMode) isBinding()         {}
func (Motion) isBinding()         {}
func (Repeat) isBinding()         {}
func (RepeatOrMotion) isBinding() {}
func (ModeAndModify) isBinding()  {}
