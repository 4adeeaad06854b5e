package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event into a Key. It returns false for
// events the resolver has no use for (bare modifier noise, unknown keys).
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	mod := ModNone
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod = mod.With(ModCtrl)
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod = mod.With(ModAlt)
	}

	switch ev.Key() {
	case tcell.KeyRune:
		// Shift is already folded into the rune by the terminal.
		return Key{Code: CodeRune, Rune: ev.Rune(), Mod: mod}, true
	case tcell.KeyEscape:
		return Key{Code: CodeEscape, Mod: mod}, true
	case tcell.KeyEnter:
		return Key{Code: CodeEnter, Mod: mod}, true
	case tcell.KeyTab:
		return Key{Code: CodeTab, Mod: mod}, true
	case tcell.KeyBacktab:
		return Key{Code: CodeTab, Mod: mod.With(ModShift)}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Code: CodeBackspace, Mod: mod}, true
	case tcell.KeyDelete:
		return Key{Code: CodeDelete, Mod: mod}, true
	case tcell.KeyInsert:
		return Key{Code: CodeInsert, Mod: mod}, true
	case tcell.KeyHome:
		return Key{Code: CodeHome, Mod: mod}, true
	case tcell.KeyEnd:
		return Key{Code: CodeEnd, Mod: mod}, true
	case tcell.KeyPgUp:
		return Key{Code: CodePageUp, Mod: mod}, true
	case tcell.KeyPgDn:
		return Key{Code: CodePageDown, Mod: mod}, true
	case tcell.KeyUp:
		return Key{Code: CodeUp, Mod: mod}, true
	case tcell.KeyDown:
		return Key{Code: CodeDown, Mod: mod}, true
	case tcell.KeyLeft:
		return Key{Code: CodeLeft, Mod: mod}, true
	case tcell.KeyRight:
		return Key{Code: CodeRight, Mod: mod}, true
	}

	// tcell reports control characters as distinct key codes; normalize
	// them to the letter with a Ctrl modifier so bindings like <c-d> match.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return Key{Code: CodeRune, Rune: r, Mod: mod.With(ModCtrl)}, true
	}

	return Key{}, false
}
