package tokenize

import (
	"strings"
	"testing"

	"jpsegment/anchor"
)

func TestTokenizeReproducesInputViaConcatenation(t *testing.T) {
	original := "図書館で本を借りました。"
	words := []anchor.AnchoredWord{
		{OriginalText: "図書館"},
		{OriginalText: "本"},
		{OriginalText: "借りました"},
	}
	got := Tokenize(original, words)
	if strings.Join(got, "") != original {
		t.Errorf("concatenation = %q, want %q", strings.Join(got, ""), original)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	got := Tokenize("", nil)
	if len(got) != 0 {
		t.Errorf("Tokenize(\"\", nil) = %+v, want empty", got)
	}
}

func TestTokenizeDropsUnlocatableAnchor(t *testing.T) {
	got := Tokenize("ABC", []anchor.AnchoredWord{{OriginalText: "本"}})
	if len(got) != 1 || got[0] != "ABC" {
		t.Errorf("Tokenize with unlocatable anchor = %+v", got)
	}
}

func TestTokenizeMonotonicOrder(t *testing.T) {
	original := "本を読む本"
	words := []anchor.AnchoredWord{{OriginalText: "本"}, {OriginalText: "読む"}}
	got := Tokenize(original, words)
	want := []string{"本", "を", "読む", "本"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Tokenize = %+v, want %+v", got, want)
	}
}
