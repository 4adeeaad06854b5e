package key

import (
	"fmt"
	"strings"
)

// codeNames maps lowercase names used in <...> notation to named keys.
var codeNames = map[string]Code{
	"esc":      CodeEscape,
	"escape":   CodeEscape,
	"cr":       CodeEnter,
	"enter":    CodeEnter,
	"return":   CodeEnter,
	"tab":      CodeTab,
	"bs":       CodeBackspace,
	"backspace": CodeBackspace,
	"del":      CodeDelete,
	"delete":   CodeDelete,
	"ins":      CodeInsert,
	"insert":   CodeInsert,
	"home":     CodeHome,
	"end":      CodeEnd,
	"pgup":     CodePageUp,
	"pageup":   CodePageUp,
	"pgdn":     CodePageDown,
	"pagedown": CodePageDown,
	"up":       CodeUp,
	"down":     CodeDown,
	"left":     CodeLeft,
	"right":    CodeRight,
}

// Parse parses a single key specification: a bare character ("g"), or
// vim-style bracket notation ("<esc>", "<c-d>", "<space>").
func Parse(spec string) (Key, error) {
	if spec == "" {
		return Key{}, fmt.Errorf("empty key spec")
	}

	if !strings.HasPrefix(spec, "<") {
		runes := []rune(spec)
		if len(runes) != 1 {
			return Key{}, fmt.Errorf("invalid key spec: %q", spec)
		}
		return FromRune(runes[0]), nil
	}

	if !strings.HasSuffix(spec, ">") || len(spec) < 3 {
		return Key{}, fmt.Errorf("unterminated key spec: %q", spec)
	}

	inner := strings.ToLower(spec[1 : len(spec)-1])
	parts := strings.Split(inner, "-")

	var mod Modifier
	for len(parts) > 1 {
		switch parts[0] {
		case "c", "ctrl":
			mod = mod.With(ModCtrl)
		case "a", "alt", "m":
			mod = mod.With(ModAlt)
		case "s", "shift":
			mod = mod.With(ModShift)
		default:
			return Key{}, fmt.Errorf("unknown modifier %q in %q", parts[0], spec)
		}
		parts = parts[1:]
	}

	name := parts[0]
	if name == "space" {
		return Key{Code: CodeRune, Rune: ' ', Mod: mod}, nil
	}
	if code, ok := codeNames[name]; ok {
		return Key{Code: code, Mod: mod}, nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Key{}, fmt.Errorf("unknown key name %q in %q", name, spec)
	}
	k := Key{Code: CodeRune, Rune: runes[0], Mod: mod}
	// Shift on a character is the character itself.
	if k.Mod.HasShift() {
		k.Mod = k.Mod.Without(ModShift)
		k.Rune = []rune(strings.ToUpper(string(k.Rune)))[0]
	}
	return k, nil
}

// ParseSequence parses a continuous vim-style sequence such as "gg",
// "<c-x>s" or "dd" into its keys.
func ParseSequence(s string) ([]Key, error) {
	var keys []Key
	i := 0
	for i < len(s) {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end == -1 {
				// No closing bracket: literal '<'.
				keys = append(keys, FromRune('<'))
				i++
				continue
			}
			k, err := Parse(s[i : i+end+1])
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			i += end + 1
			continue
		}
		runes := []rune(s[i:])
		keys = append(keys, FromRune(runes[0]))
		i += len(string(runes[0]))
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}
	return keys, nil
}

// MustParseSequence parses a sequence and panics on error. For use in
// binding-table initialization only.
func MustParseSequence(s string) []Key {
	keys, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return keys
}
