package keymap

import (
	"testing"

	"github.com/dshills/filestorm/internal/input/key"
	"github.com/dshills/filestorm/internal/input/mode"
	"github.com/dshills/filestorm/internal/message"
)

func TestTreeFind(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, mode.Navigation, "j", Motion{message.DirDown})
	mustAdd(t, tree, mode.Navigation, "gg", Motion{message.DirTop})
	mustAdd(t, tree, mode.Navigation, "ZZ", ToMessage{message.QuitRequested{}})

	tests := []struct {
		name   string
		mode   mode.Mode
		keys   string
		result Result
	}{
		{"terminal single key", mode.Navigation, "j", ResultBound},
		{"chord prefix", mode.Navigation, "g", ResultPending},
		{"full chord", mode.Navigation, "gg", ResultBound},
		{"no match", mode.Navigation, "x", ResultNone},
		{"dead prefix extension", mode.Navigation, "gx", ResultNone},
		{"wrong mode", mode.Insert, "j", ResultNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binding, result := tree.Find(tt.mode, key.MustParseSequence(tt.keys))
			if result != tt.result {
				t.Fatalf("Find(%s, %q) result = %v, want %v", tt.mode, tt.keys, result, tt.result)
			}
			if result == ResultBound && binding == nil {
				t.Error("bound result with nil binding")
			}
			if result != ResultBound && binding != nil {
				t.Error("non-bound result with binding")
			}
		})
	}
}

// A binding that is also a prefix of a longer chord must stay pending until
// the longer chord is ruled out.
func TestTreeFindAmbiguousPrefix(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, mode.Navigation, "z", Motion{message.DirDown})
	mustAdd(t, tree, mode.Navigation, "zz", ToMessage{message.MoveViewPort{Direction: message.ViewCenterOnCursor}})

	_, result := tree.Find(mode.Navigation, key.MustParseSequence("z"))
	if result != ResultPending {
		t.Errorf("prefix with binding and children: result = %v, want ResultPending", result)
	}

	_, result = tree.Find(mode.Navigation, key.MustParseSequence("zz"))
	if result != ResultBound {
		t.Errorf("full chord: result = %v, want ResultBound", result)
	}
}

func TestTreeAddReplaces(t *testing.T) {
	tree := NewTree()
	mustAdd(t, tree, mode.Navigation, "q", Motion{message.DirDown})
	mustAdd(t, tree, mode.Navigation, "q", ToMessage{message.QuitRequested{}})

	binding, result := tree.Find(mode.Navigation, key.MustParseSequence("q"))
	if result != ResultBound {
		t.Fatalf("result = %v, want ResultBound", result)
	}
	if _, ok := binding.(ToMessage); !ok {
		t.Errorf("binding = %T, want ToMessage", binding)
	}
}

func TestTreeAddRejectsBadInput(t *testing.T) {
	tree := NewTree()
	if err := tree.Add(mode.Navigation, nil, Motion{message.DirDown}); err == nil {
		t.Error("empty sequence should be rejected")
	}
	if err := tree.Add(mode.Navigation, key.MustParseSequence("q"), nil); err == nil {
		t.Error("nil binding should be rejected")
	}
}

func TestDefaultTree(t *testing.T) {
	tree := Default()

	tests := []struct {
		mode mode.Mode
		keys string
	}{
		{mode.Navigation, "j"},
		{mode.Navigation, "gg"},
		{mode.Navigation, "ZZ"},
		{mode.Navigation, ":"},
		{mode.Normal, "dd"},
		{mode.Normal, "0"},
		{mode.Normal, "o"},
		{mode.Command, "<cr>"},
		{mode.Insert, "<esc>"},
	}

	for _, tt := range tests {
		_, result := tree.Find(tt.mode, key.MustParseSequence(tt.keys))
		if result != ResultBound {
			t.Errorf("default tree: %s %q result = %v, want ResultBound", tt.mode, tt.keys, result)
		}
	}
}

func mustAdd(t *testing.T, tree *Tree, m mode.Mode, keys string, b Binding) {
	t.Helper()
	if err := tree.Add(m, key.MustParseSequence(keys), b); err != nil {
		t.Fatalf("Add(%s, %q) error = %v", m, keys, err)
	}
}
