// Package key models keyboard input. A Key is a comparable value so binding
// tables can use it directly as a trie edge; equality is structural.
package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Code identifies a key. Character keys use CodeRune with the character in
// Key.Rune; everything else is a named key.
type Code uint8

const (
	// CodeRune is a character key; the character is stored in Key.Rune.
	CodeRune Code = iota

	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown

	CodeUp
	CodeDown
	CodeLeft
	CodeRight
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeRune:
		return "Rune"
	case CodeEscape:
		return "Esc"
	case CodeEnter:
		return "Enter"
	case CodeTab:
		return "Tab"
	case CodeBackspace:
		return "BS"
	case CodeDelete:
		return "Del"
	case CodeInsert:
		return "Ins"
	case CodeHome:
		return "Home"
	case CodeEnd:
		return "End"
	case CodePageUp:
		return "PgUp"
	case CodePageDown:
		return "PgDn"
	case CodeUp:
		return "Up"
	case CodeDown:
		return "Down"
	case CodeLeft:
		return "Left"
	case CodeRight:
		return "Right"
	default:
		return fmt.Sprintf("Code(%d)", c)
	}
}

// Key is a single key press: a code (character or named key) plus modifiers.
// Shift is folded into the rune for character keys, so 'G' is the rune 'G'
// with no modifier rather than 'g' with Shift.
type Key struct {
	Code Code
	Rune rune
	Mod  Modifier
}

// FromRune creates a character key.
func FromRune(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// Special creates a named key.
func Special(c Code) Key {
	return Key{Code: c}
}

// WithMod returns a copy of the key with the modifier added.
func (k Key) WithMod(mod Modifier) Key {
	k.Mod = k.Mod.With(mod)
	return k
}

// IsRune reports whether this is a character key.
func (k Key) IsRune() bool {
	return k.Code == CodeRune && k.Rune != 0
}

// IsPrintable reports whether this key inserts a printable character when
// the mode treats unmatched keys as literal text.
func (k Key) IsPrintable() bool {
	return k.IsRune() && k.Mod == ModNone && unicode.IsPrint(k.Rune)
}

// String returns a vim-style representation: "a", "G", "<c-d>", "<esc>".
func (k Key) String() string {
	if k.IsRune() && k.Mod == ModNone {
		if k.Rune == ' ' {
			return "<space>"
		}
		return string(k.Rune)
	}

	var parts []string
	if k.Mod.HasCtrl() {
		parts = append(parts, "c")
	}
	if k.Mod.HasAlt() {
		parts = append(parts, "a")
	}
	if k.Mod.HasShift() && !k.IsRune() {
		parts = append(parts, "s")
	}

	var name string
	switch k.Code {
	case CodeRune:
		if k.Rune == ' ' {
			name = "space"
		} else {
			name = string(k.Rune)
		}
	case CodeEnter:
		name = "cr"
	case CodeEscape:
		name = "esc"
	case CodeBackspace:
		name = "bs"
	case CodeDelete:
		name = "del"
	default:
		name = strings.ToLower(k.Code.String())
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// Sequence formats a key slice the way a status line would show it.
func Sequence(keys []Key) string {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k.String())
	}
	return sb.String()
}
