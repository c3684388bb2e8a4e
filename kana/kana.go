// Package kana implements the character-level folding operations shared by
// the lexicon index builder and the dictionary anchor: katakana/hiragana
// conversion, long-vowel mark resolution, and ASCII width folding.
package kana

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

const (
	hiraganaStart       = 0x3040
	hiraganaEnd         = 0x309F
	katakanaStart       = 0x30A0
	katakanaEnd         = 0x30FF
	katakanaSmallStart  = 0x30A1
	katakanaSmallEnd    = 0x30F6
	cjkUnifiedStart     = 0x4E00
	cjkUnifiedEnd       = 0x9FAF
	halfKatakanaStart   = 0xFF66
	halfKatakanaEnd     = 0xFF9D
	prolongedSoundMark  = 0x30FC
	fullwidthDigitStart = 0xFF10
	fullwidthDigitEnd   = 0xFF19
	fullwidthUpperStart = 0xFF21
	fullwidthUpperEnd   = 0xFF3A
	fullwidthLowerStart = 0xFF41
	fullwidthLowerEnd   = 0xFF5A
)

// IsKatakana reports whether ch is a katakana character or the long-vowel
// mark (which only ever appears attached to katakana or kana readings).
func IsKatakana(ch rune) bool {
	return (ch >= katakanaStart && ch <= katakanaEnd) || ch == prolongedSoundMark
}

// IsRomajiOnly reports whether text contains no hiragana, katakana, CJK
// ideograph or halfwidth-katakana character.
func IsRomajiOnly(text string) bool {
	for _, ch := range text {
		if (ch >= hiraganaStart && ch <= hiraganaEnd) ||
			(ch >= katakanaStart && ch <= katakanaEnd) ||
			(ch >= cjkUnifiedStart && ch <= cjkUnifiedEnd) ||
			(ch >= halfKatakanaStart && ch <= halfKatakanaEnd) {
			return false
		}
	}
	return true
}

// KatakanaToHiragana folds small-katakana-range characters down to
// hiragana, leaving everything else (including full katakana outside that
// range, which this module never receives unshifted) untouched.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if ch >= katakanaSmallStart && ch <= katakanaSmallEnd {
			b.WriteRune(ch - 0x60)
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// hiraVowel maps a plain hiragana mora onto the vowel it ends in, used to
// resolve a following long-vowel mark.
var hiraVowel = map[rune]rune{
	'あ': 'あ', 'い': 'い', 'う': 'う', 'え': 'え', 'お': 'お',
	'か': 'あ', 'き': 'い', 'く': 'う', 'け': 'え', 'こ': 'お',
	'さ': 'あ', 'し': 'い', 'す': 'う', 'せ': 'え', 'そ': 'お',
	'た': 'あ', 'ち': 'い', 'つ': 'う', 'て': 'え', 'と': 'お',
	'な': 'あ', 'に': 'い', 'ぬ': 'う', 'ね': 'え', 'の': 'お',
	'は': 'あ', 'ひ': 'い', 'ふ': 'う', 'へ': 'え', 'ほ': 'お',
	'ま': 'あ', 'み': 'い', 'む': 'う', 'め': 'え', 'も': 'お',
	'や': 'あ', 'ゆ': 'う', 'よ': 'お',
	'ら': 'あ', 'り': 'い', 'る': 'う', 'れ': 'え', 'ろ': 'お',
	'わ': 'あ', 'ゐ': 'い', 'ゑ': 'え', 'を': 'お',
	'が': 'あ', 'ぎ': 'い', 'ぐ': 'う', 'げ': 'え', 'ご': 'お',
	'ざ': 'あ', 'じ': 'い', 'ず': 'う', 'ぜ': 'え', 'ぞ': 'お',
	'だ': 'あ', 'ぢ': 'い', 'づ': 'う', 'で': 'え', 'ど': 'お',
	'ば': 'あ', 'び': 'い', 'ぶ': 'う', 'べ': 'え', 'ぼ': 'お',
	'ぱ': 'あ', 'ぴ': 'い', 'ぷ': 'う', 'ぺ': 'え', 'ぽ': 'お',
}

// ExpandLongVowels replaces each 'ー' long-vowel mark in hira (which must
// already be pure hiragana) with the vowel of the preceding mora, dropping
// it if there is none.
func ExpandLongVowels(hira string) string {
	var b strings.Builder
	b.Grow(len(hira))
	var prevVowel rune
	for _, ch := range hira {
		if ch == 'ー' {
			if prevVowel != 0 {
				b.WriteRune(prevVowel)
			}
			continue
		}
		b.WriteRune(ch)
		if v, ok := hiraVowel[ch]; ok {
			prevVowel = v
		}
	}
	return b.String()
}

// ToHiraganaPreserveLong folds ゎ/ヮ to わ, then katakana to hiragana,
// leaving any 'ー' long-vowel marks in place.
func ToHiraganaPreserveLong(s string) string {
	s = strings.ReplaceAll(s, "ゎ", "わ")
	s = strings.ReplaceAll(s, "ヮ", "わ")
	return KatakanaToHiragana(s)
}

// ToHiraganaExpandLong does the same folding as ToHiraganaPreserveLong and
// additionally resolves every long-vowel mark via ExpandLongVowels.
func ToHiraganaExpandLong(s string) string {
	return ExpandLongVowels(ToHiraganaPreserveLong(s))
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isFullwidthDigit(r rune) bool { return r >= fullwidthDigitStart && r <= fullwidthDigitEnd }
func isFullwidthUpper(r rune) bool { return r >= fullwidthUpperStart && r <= fullwidthUpperEnd }
func isFullwidthLower(r rune) bool { return r >= fullwidthLowerStart && r <= fullwidthLowerEnd }

// ToFullwidthASCII widens ASCII digits and letters to their fullwidth
// equivalents via golang.org/x/text/width, leaving every other rune
// (including katakana and kanji) untouched.
func ToFullwidthASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIIDigit(r) || isASCIIUpper(r) || isASCIILower(r) {
			if wide, _, err := transform.String(width.Widen, string(r)); err == nil {
				b.WriteString(wide)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToHalfwidthASCII narrows fullwidth digits and letters back to ASCII via
// golang.org/x/text/width, leaving every other rune untouched.
func ToHalfwidthASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFullwidthDigit(r) || isFullwidthUpper(r) || isFullwidthLower(r) {
			if narrow, _, err := transform.String(width.Narrow, string(r)); err == nil {
				b.WriteString(narrow)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToFullWidthDigits widens only ASCII digit runes to fullwidth, leaving
// letters and everything else untouched. Used when normalizing raw input
// text ahead of analysis, per the module's width-folding contract.
func ToFullWidthDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIIDigit(r) {
			if wide, _, err := transform.String(width.Widen, string(r)); err == nil {
				b.WriteString(wide)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
