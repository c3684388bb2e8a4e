// Package analyzer models the morphological analyzer as an injectable
// interface: the analyzer backend is an external capability, not part of
// this module's core. It also wires github.com/ikawaha/kagome/v2 as a
// concrete default implementation behind that interface, converting
// kagome's tokenizer.Token into morph.Morpheme.
package analyzer

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"jpsegment/jperr"
	"jpsegment/kana"
	"jpsegment/morph"
)

// Analyzer produces the raw morpheme stream a Segmenter feeds into the
// merge pipeline. Mode selects among the backend's segmentation
// granularities (normal/search/extended); callers that don't care pass
// ModeNormal.
type Analyzer interface {
	Analyze(ctx context.Context, text string, mode Mode) ([]morph.Morpheme, error)
}

// Mode selects a morphological analyzer's segmentation granularity.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeExtended
)

func (m Mode) kagomeMode() tokenizer.TokenizeMode {
	switch m {
	case ModeSearch:
		return tokenizer.Search
	case ModeExtended:
		return tokenizer.Extended
	default:
		return tokenizer.Normal
	}
}

// Kagome is the default Analyzer, backed by a pure-Go IPA-dictionary
// morphological analyzer. It is safe for concurrent use: the underlying
// tokenizer is read-only after construction.
type Kagome struct {
	tok *tokenizer.Tokenizer
}

// NewKagome constructs a Kagome analyzer against the bundled IPA
// dictionary. It fails with jperr.UnsupportedPlatform if the tokenizer
// cannot be built (no dictionary binding available on this platform).
func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, jperr.New("analyzer.NewKagome", jperr.UnsupportedPlatform, err)
	}
	return &Kagome{tok: t}, nil
}

// interopClean drops every rune the analyzer backend is not fed: anything
// outside the kana/CJK/fullwidth ranges, the accepted punctuation set, and
// the padding whitespace the preprocessing step inserts.
var interopClean = regexp.MustCompile(`[^\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}` +
	`\x{FF21}-\x{FF3A}\x{FF41}-\x{FF5A}\x{FF10}-\x{FF19}` +
	`\x{3005}\x{3001}-\x{3003}\x{3008}-\x{3011}\x{3014}-\x{301F}\x{FF01}-\x{FF0F}` +
	`\x{FF1A}-\x{FF1F}\x{FF3B}-\x{FF3F}\x{FF5B}-\x{FF60}\x{FF62}-\x{FF65}` +
	`\x{FF0E}\n\x{2026}\x{3000}\x{2015}\x{2500}() \x{300D}]`)

// Analyze runs the kagome tokenizer over text and converts its tokens into
// Morpheme values. Digits are widened and the interop character filter is
// applied first; text that carries no Japanese at all analyzes to nothing.
// It never itself returns an error on the hot path; ctx cancellation is
// honored before the call, not mid-scan (kagome's Analyze call has no
// cancellation point).
func (k *Kagome) Analyze(ctx context.Context, text string, mode Mode) ([]morph.Morpheme, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	if text == "" || k.tok == nil {
		return nil, nil
	}
	cleaned := interopClean.ReplaceAllString(kana.ToFullWidthDigits(text), "")
	if kana.IsRomajiOnly(cleaned) {
		return nil, nil
	}
	toks := k.tok.Analyze(cleaned, mode.kagomeMode())
	out := make([]morph.Morpheme, 0, len(toks))
	for _, t := range toks {
		pos := t.POS()
		base, ok := t.BaseForm()
		if !ok || base == "" {
			base = t.Surface
		}
		reading, ok := t.Reading()
		if !ok {
			reading = ""
		}
		out = append(out, morph.FromFields(t.Surface, pos, base, base, reading))
	}
	return out, nil
}

// Stub is a fixed-response Analyzer for unit tests, so the merge/anchor
// pipeline can be exercised against a deterministic morpheme stream without
// depending on kagome's real segmentation.
type Stub struct {
	Morphemes []morph.Morpheme
}

// Analyze returns the Stub's fixed Morphemes, ignoring text and mode.
func (s Stub) Analyze(ctx context.Context, text string, mode Mode) ([]morph.Morpheme, error) {
	return s.Morphemes, nil
}
