package kana

import "testing"

func TestKatakanaToHiragana(t *testing.T) {
	if got := KatakanaToHiragana("ァィゥ"); got != "ぁぃぅ" {
		t.Errorf("KatakanaToHiragana = %q", got)
	}
}

func TestExpandLongVowels(t *testing.T) {
	cases := []struct{ in, want string }{
		{"コヒ", "コヒ"}, // katakana input isn't in the hiragana vowel table; no-op
		{"らーめん", "らあめん"},
		{"けーき", "けえき"},
		{"ー", ""},
	}
	for _, c := range cases {
		if got := ExpandLongVowels(c.in); got != c.want {
			t.Errorf("ExpandLongVowels(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToHiraganaPreserveAndExpandLong(t *testing.T) {
	if got := ToHiraganaPreserveLong("ラーメン"); got != "らーめん" {
		t.Errorf("ToHiraganaPreserveLong = %q", got)
	}
	if got := ToHiraganaExpandLong("ラーメン"); got != "らあめん" {
		t.Errorf("ToHiraganaExpandLong = %q", got)
	}
}

func TestWidthFolding(t *testing.T) {
	if got := ToFullwidthASCII("abc123"); got != "ａｂｃ１２３" {
		t.Errorf("ToFullwidthASCII = %q", got)
	}
	full := ToFullwidthASCII("abc123")
	if got := ToHalfwidthASCII(full); got != "abc123" {
		t.Errorf("ToHalfwidthASCII round trip = %q", got)
	}
	if got := ToFullWidthDigits("5"); got != "５" {
		t.Errorf("ToFullWidthDigits = %q", got)
	}
}

func TestIsRomajiOnly(t *testing.T) {
	if !IsRomajiOnly("hello123") {
		t.Error("expected romaji-only true")
	}
	if IsRomajiOnly("こんにちは") {
		t.Error("expected romaji-only false")
	}
}

func TestToHiraganaPreserveLongIsIdempotent(t *testing.T) {
	for _, s := range []string{"ラーメン", "らーめん", "本", "ABC123"} {
		once := ToHiraganaPreserveLong(s)
		twice := ToHiraganaPreserveLong(once)
		if once != twice {
			t.Errorf("ToHiraganaPreserveLong(%q) = %q, applying again = %q", s, once, twice)
		}
	}
}

func TestIsKatakana(t *testing.T) {
	if !IsKatakana('ラ') {
		t.Error("expected katakana true")
	}
	if !IsKatakana('ー') {
		t.Error("expected long vowel mark treated as katakana")
	}
	if IsKatakana('ら') {
		t.Error("expected hiragana not katakana")
	}
}
