package keymap

import (
	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

type mapping struct {
	keys    string
	binding Binding
}

// Default returns the built-in binding tree.
func Default() *Tree {
	t := NewTree()
	for m, mappings := range defaultMappings() {
		for _, entry := range mappings {
			// Sequences here are static; MustParseSequence panics only
			// on a programming error in this table.
			_ = t.Add(m, key.MustParseSequence(entry.keys), entry.binding)
		}
	}
	return t
}

func defaultMappings() map[mode.Mode][]mapping {
	lineEditing := []mapping{
		{"<bs>", ToMessage{message.TextModified{Count: 1, Modification: message.DeleteCharBefore{}}}},
		{"<del>", ToMessage{message.TextModified{Count: 1, Modification: message.DeleteCharOnCursor{}}}},
		{"<cr>", ToMessage{message.ExecuteCommand{}}},
		{"<left>", Motion{message.DirLeft}},
		{"<right>", Motion{message.DirRight}},
	}

	commandMode := append([]mapping{
		{"<esc>", ToMode{mode.Navigation}},
	}, lineEditing...)

	insertMode := append([]mapping{
		{"<esc>", ToMode{mode.Normal}},
	}, lineEditing...)

	navigationMode := []mapping{
		{"<esc>", ToMode{mode.Navigation}},
		{":", ToMode{mode.Command}},
		{"<c-n>", ToMode{mode.Normal}},
		{"h", ToMessage{message.NavigateToParent{}}},
		{"l", ToMessage{message.NavigateToSelected{}}},
		{"j", Motion{message.DirDown}},
		{"k", Motion{message.DirUp}},
		{"gg", Motion{message.DirTop}},
		{"G", Motion{message.DirBottom}},
		{"<c-d>", ToMessage{message.MoveViewPort{Direction: message.ViewHalfPageDown}}},
		{"<c-u>", ToMessage{message.MoveViewPort{Direction: message.ViewHalfPageUp}}},
		{"zt", ToMessage{message.MoveViewPort{Direction: message.ViewTopOnCursor}}},
		{"zz", ToMessage{message.MoveViewPort{Direction: message.ViewCenterOnCursor}}},
		{"zb", ToMessage{message.MoveViewPort{Direction: message.ViewBottomOnCursor}}},
		{"ZZ", ToMessage{message.QuitRequested{}}},
	}
	for d := 0; d <= 9; d++ {
		navigationMode = append(navigationMode, mapping{
			string(rune('0' + d)), Repeat{Digit: d},
		})
	}

	normalMode := []mapping{
		{"<esc>", ToMode{mode.Navigation}},
		{":", ToMode{mode.Command}},
		{"h", Motion{message.DirLeft}},
		{"j", Motion{message.DirDown}},
		{"k", Motion{message.DirUp}},
		{"l", Motion{message.DirRight}},
		{"gg", Motion{message.DirTop}},
		{"G", Motion{message.DirBottom}},
		{"$", Motion{message.DirLineEnd}},
		{"0", RepeatOrMotion{Digit: 0, Direction: message.DirLineStart}},
		{"dd", ToMessage{message.TextModified{Count: 1, Modification: message.DeleteLine{}}}},
		{"o", ModeAndModify{mode.Insert, message.InsertLine{Direction: message.LineBelow}}},
		{"O", ModeAndModify{mode.Insert, message.InsertLine{Direction: message.LineAbove}}},
		{"i", ToMode{mode.Insert}},
		{"<c-d>", ToMessage{message.MoveViewPort{Direction: message.ViewHalfPageDown}}},
		{"<c-u>", ToMessage{message.MoveViewPort{Direction: message.ViewHalfPageUp}}},
		{"zt", ToMessage{message.MoveViewPort{Direction: message.ViewTopOnCursor}}},
		{"zz", ToMessage{message.MoveViewPort{Direction: message.ViewCenterOnCursor}}},
		{"zb", ToMessage{message.MoveViewPort{Direction: message.ViewBottomOnCursor}}},
		{"ZZ", ToMessage{message.QuitRequested{}}},
	}
	for d := 1; d <= 9; d++ {
		normalMode = append(normalMode, mapping{
			string(rune('0' + d)), Repeat{Digit: d},
		})
	}

	return map[mode.Mode][]mapping{
		mode.Command:    commandMode,
		mode.Insert:     insertMode,
		mode.Navigation: navigationMode,
		mode.Normal:     normalMode,
	}
}
