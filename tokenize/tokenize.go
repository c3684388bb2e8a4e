// Package tokenize splices anchored dictionary spans back into the
// original input text as an ordered token list, and provides the Segmenter
// facade that wires the whole pipeline together behind the module's two
// entry points, Segment and CollectMatches.
package tokenize

import (
	"strings"

	"jpsegment/anchor"
)

// span is one matched anchor located within the original text, together
// with the byte offset it was found at.
type span struct {
	start int
	word  anchor.AnchoredWord
}

// locate walks words in order and finds the earliest occurrence of each
// one's OriginalText in original at or after the current cursor, using
// plain substring search. Anchors that cannot be located are dropped
// silently. The returned spans are in input order;
// trailing/leading/between-anchor gaps are the caller's to compute from
// the cursor positions this leaves behind.
func locate(original string, words []anchor.AnchoredWord) ([]span, int) {
	cursor := 0
	spans := make([]span, 0, len(words))
	for _, w := range words {
		if w.OriginalText == "" {
			continue
		}
		idx := strings.Index(original[cursor:], w.OriginalText)
		if idx < 0 {
			continue
		}
		start := cursor + idx
		spans = append(spans, span{start: start, word: w})
		cursor = start + len(w.OriginalText)
	}
	return spans, cursor
}

// Tokenize splices anchored words into the original text: each anchor's
// surface is emitted as a token, and any text between anchors (or before
// the first, or after the last) is emitted verbatim as a gap token.
// Concatenating the result always reproduces original.
func Tokenize(original string, words []anchor.AnchoredWord) []string {
	spans, _ := locate(original, words)
	var out []string
	cursor := 0
	for _, sp := range spans {
		if sp.start > cursor {
			out = append(out, original[cursor:sp.start])
		}
		out = append(out, sp.word.OriginalText)
		cursor = sp.start + len(sp.word.OriginalText)
	}
	if cursor < len(original) {
		out = append(out, original[cursor:])
	}
	return out
}
