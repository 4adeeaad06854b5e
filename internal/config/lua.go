package config

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/input/keymap"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

// actions names the bindings a keymap script may map to.
var actions = map[string]keymap.Binding{
	"quit":              keymap.ToMessage{Message: message.QuitRequested{}},
	"navigate-parent":   keymap.ToMessage{Message: message.NavigateToParent{}},
	"navigate-selected": keymap.ToMessage{Message: message.NavigateToSelected{}},
	"execute-command":   keymap.ToMessage{Message: message.ExecuteCommand{}},

	"up":         keymap.Motion{Direction: message.DirUp},
	"down":       keymap.Motion{Direction: message.DirDown},
	"left":       keymap.Motion{Direction: message.DirLeft},
	"right":      keymap.Motion{Direction: message.DirRight},
	"top":        keymap.Motion{Direction: message.DirTop},
	"bottom":     keymap.Motion{Direction: message.DirBottom},
	"line-start": keymap.Motion{Direction: message.DirLineStart},
	"line-end":   keymap.Motion{Direction: message.DirLineEnd},

	"half-page-up":   keymap.ToMessage{Message: message.MoveViewPort{Direction: message.ViewHalfPageUp}},
	"half-page-down": keymap.ToMessage{Message: message.MoveViewPort{Direction: message.ViewHalfPageDown}},
	"view-top":       keymap.ToMessage{Message: message.MoveViewPort{Direction: message.ViewTopOnCursor}},
	"view-center":    keymap.ToMessage{Message: message.MoveViewPort{Direction: message.ViewCenterOnCursor}},
	"view-bottom":    keymap.ToMessage{Message: message.MoveViewPort{Direction: message.ViewBottomOnCursor}},

	"mode-navigation": keymap.ToMode{Mode: mode.Navigation},
	"mode-normal":     keymap.ToMode{Mode: mode.Normal},
	"mode-insert":     keymap.ToMode{Mode: mode.Insert},
	"mode-command":    keymap.ToMode{Mode: mode.Command},

	"delete-line": keymap.ToMessage{Message: message.TextModified{
		Count:        1,
		Modification: message.DeleteLine{},
	}},
	"delete-char-before": keymap.ToMessage{Message: message.TextModified{
		Count:        1,
		Modification: message.DeleteCharBefore{},
	}},
	"delete-char-on-cursor": keymap.ToMessage{Message: message.TextModified{
		Count:        1,
		Modification: message.DeleteCharOnCursor{},
	}},
}

// ApplyKeymapScript runs a Lua script against tree. The script sees a
// single global, map(mode, keys, action); mappings it adds replace built-in
// ones for the same sequence. A missing script file is not an error.
func ApplyKeymapScript(tree *keymap.Tree, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	L := lua.NewState()
	defer L.Close()

	// The script configures key bindings and nothing else.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("map", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		keys := L.CheckString(2)
		action := L.CheckString(3)

		if err := addMapping(tree, modeName, keys, action); err != nil {
			L.RaiseError("map(%q, %q, %q): %v", modeName, keys, action, err)
		}
		return 0
	}))

	if err := L.DoString(string(src)); err != nil {
		return fmt.Errorf("keymap script %s: %w", path, err)
	}
	return nil
}

func addMapping(tree *keymap.Tree, modeName, keys, action string) error {
	m, err := mode.Parse(modeName)
	if err != nil {
		return err
	}
	sequence, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	binding, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	return tree.Add(m, sequence, binding)
}
