package key

import "strings"

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key. Only meaningful on named keys;
	// for character keys Shift is part of the rune.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt
)

// Has reports whether m contains the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift reports whether Shift is pressed.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl reports whether Control is pressed.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt reports whether Alt is pressed.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// With returns a new Modifier with the given modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the given modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns a compact representation like "c-a".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "c")
	}
	if m.HasAlt() {
		parts = append(parts, "a")
	}
	if m.HasShift() {
		parts = append(parts, "s")
	}
	return strings.Join(parts, "-")
}
