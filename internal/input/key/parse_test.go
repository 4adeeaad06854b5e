package key

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    Key
		wantErr bool
	}{
		{"lowercase char", "a", FromRune('a'), false},
		{"uppercase char", "G", FromRune('G'), false},
		{"escape", "<esc>", Special(CodeEscape), false},
		{"enter", "<cr>", Special(CodeEnter), false},
		{"space", "<space>", FromRune(' '), false},
		{"ctrl char", "<c-d>", Key{Code: CodeRune, Rune: 'd', Mod: ModCtrl}, false},
		{"ctrl long form", "<ctrl-d>", Key{Code: CodeRune, Rune: 'd', Mod: ModCtrl}, false},
		{"alt char", "<a-x>", Key{Code: CodeRune, Rune: 'x', Mod: ModAlt}, false},
		{"shift folds into rune", "<s-a>", FromRune('A'), false},
		{"ctrl named key", "<c-up>", Key{Code: CodeUp, Mod: ModCtrl}, false},
		{"empty", "", Key{}, true},
		{"multi char", "ab", Key{}, true},
		{"unknown name", "<foo>", Key{}, true},
		{"unknown modifier", "<x-a>", Key{}, true},
		{"unterminated", "<esc", Key{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Key
	}{
		{"two chars", "gg", []Key{FromRune('g'), FromRune('g')}},
		{"bracket then char", "<c-x>s", []Key{
			{Code: CodeRune, Rune: 'x', Mod: ModCtrl},
			FromRune('s'),
		}},
		{"named key", "<esc>", []Key{Special(CodeEscape)}},
		{"unclosed bracket is literal", "<a", []Key{FromRune('<'), FromRune('a')}},
		{"upper pair", "ZZ", []Key{FromRune('Z'), FromRune('Z')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSequence(tt.spec)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error = %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSequence(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}

	if _, err := ParseSequence(""); err == nil {
		t.Error("ParseSequence(\"\") expected error")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{FromRune('a'), "a"},
		{FromRune('G'), "G"},
		{FromRune(' '), "<space>"},
		{Special(CodeEscape), "<esc>"},
		{Special(CodeEnter), "<cr>"},
		{Key{Code: CodeRune, Rune: 'd', Mod: ModCtrl}, "<c-d>"},
		{Key{Code: CodeUp, Mod: ModShift}, "<s-up>"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%+v String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	for _, spec := range []string{"gg", "dd", "<c-d>", "ZZ", "<esc>j"} {
		keys, err := ParseSequence(spec)
		if err != nil {
			t.Fatalf("ParseSequence(%q) error = %v", spec, err)
		}
		if got := Sequence(keys); got != spec {
			t.Errorf("Sequence(ParseSequence(%q)) = %q", spec, got)
		}
	}
}

func TestIsPrintable(t *testing.T) {
	if !FromRune('x').IsPrintable() {
		t.Error("plain rune should be printable")
	}
	if (Key{Code: CodeRune, Rune: 'x', Mod: ModCtrl}).IsPrintable() {
		t.Error("ctrl-modified rune should not be printable")
	}
	if Special(CodeEscape).IsPrintable() {
		t.Error("named key should not be printable")
	}
}
