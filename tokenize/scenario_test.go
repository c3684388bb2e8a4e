package tokenize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpsegment/analyzer"
	"jpsegment/deconjugate"
	"jpsegment/lexicon"
	"jpsegment/morph"
	"jpsegment/postag"
)

// scenarioLexicon builds the small dictionary the end-to-end library
// sentence ("図書館で本を借りました。") anchors against.
func scenarioLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	termBank := `[
		["図書館", "としょかん", "n", "", "", ["library"], 4001, "ichi1"],
		["本", "ほん", "n", "", "", ["book"], 4002, "ichi1"],
		["借りる", "かりる", "v1", "", "", ["to borrow"], 4003, "ichi1"]
	]`
	data := buildZip(t, map[string]string{"term_bank_1.json": termBank})
	opener := memOpener{files: []memZip{{name: "jmdict_english.zip", data: data}}}
	lex, err := lexicon.Load(opener, "jmdict_english.zip")
	require.NoError(t, err)
	return lex
}

func TestSegmentLiteralLibraryScenario(t *testing.T) {
	stub := analyzer.Stub{Morphemes: []morph.Morpheme{
		{Text: "図書館", PartOfSpeech: postag.Noun, DictionaryForm: "図書館", Reading: "トショカン"},
		{Text: "で", PartOfSpeech: postag.Particle, DictionaryForm: "で"},
		{Text: "本", PartOfSpeech: postag.Noun, DictionaryForm: "本", Reading: "ホン"},
		{Text: "を", PartOfSpeech: postag.Particle, DictionaryForm: "を"},
		{Text: "借りました", PartOfSpeech: postag.Verb, DictionaryForm: "借りる", Reading: "カリマシタ"},
		{Text: "。", PartOfSpeech: postag.Symbol, Section1: postag.FullStop, DictionaryForm: "。"},
	}}
	rules := []deconjugate.Rule{
		{Type: deconjugate.StdRule, DecEnd: []string{"る"}, ConEnd: []string{"ました"}, Detail: "polite-past"},
	}
	seg, err := NewSegmenter(
		WithAnalyzer(stub),
		WithLexicon(scenarioLexicon(t)),
		WithRules(rules),
	)
	require.NoError(t, err)

	tokens, err := seg.Segment(context.Background(), "図書館で本を借りました。")
	require.NoError(t, err)
	assert.Equal(t, []string{"図書館", "で", "本", "を", "借りました", "。"}, tokens)
}

func TestSegmentEmptyStringScenario(t *testing.T) {
	seg, err := NewSegmenter(
		WithAnalyzer(analyzer.Stub{}),
		WithLexicon(scenarioLexicon(t)),
		WithRules(nil),
	)
	require.NoError(t, err)

	tokens, err := seg.Segment(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestSegmentPureRomajiScenario(t *testing.T) {
	seg, err := NewSegmenter(
		WithAnalyzer(analyzer.Stub{}), // empty analysis: romaji yields no morphemes to anchor
		WithLexicon(scenarioLexicon(t)),
		WithRules(nil),
	)
	require.NoError(t, err)

	tokens, err := seg.Segment(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC"}, tokens)
}
