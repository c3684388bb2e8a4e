package tokenize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"jpsegment/analyzer"
	"jpsegment/anchor"
	"jpsegment/deconjugate"
	"jpsegment/jperr"
	"jpsegment/jplog"
	"jpsegment/lexicon"
	"jpsegment/merge"
	"jpsegment/morph"
)

// MatchResult is one dictionary-anchored span returned by CollectMatches:
// the matched surface, its position in the input, and everything the
// dictionary knows about the word it anchored to. StartIndex is a byte
// offset into the input string, consistent with the Tokenizer's cursor.
type MatchResult struct {
	Surface       string
	StartIndex    int
	WordID        int
	Spellings     []string
	Readings      []string
	AnalyzerPOS   []string
	DictionaryPOS []string
	Definitions   []string
}

// systemDicEnv is the environment variable consulted when no explicit
// dictionary path is configured.
const systemDicEnv = "JP_SEGMENT_SYSTEM_DIC"

const defaultResourceDir = "resources"

// Segmenter owns a read-only Lexicon and Deconjugator rule table and runs
// the full analyze-merge-anchor-splice pipeline. Both collaborators are
// safe to share across
// goroutines once built; Segment/CollectMatches hold no mutable state
// themselves, so a single Segmenter may be called concurrently.
type Segmenter struct {
	analyzer    analyzer.Analyzer
	anchor      *anchor.Anchor
	debugDir    string
	debugFilter jplog.Filter
}

// Option configures a Segmenter at construction time.
type Option func(*config)

type config struct {
	dictionaryPath string
	rulesPath      string
	debugDir       string
	debugFilter    jplog.Filter
	analyzer       analyzer.Analyzer
	lexicon        *lexicon.Lexicon
	lexiconCache   *lexicon.Cache
	rules          []deconjugate.Rule
	rulesSet       bool
}

// WithDictionaryPath overrides the system dictionary archive location.
func WithDictionaryPath(path string) Option {
	return func(c *config) { c.dictionaryPath = path }
}

// WithRulesPath overrides the deconjugator rule file location.
func WithRulesPath(path string) Option {
	return func(c *config) { c.rulesPath = path }
}

// WithDebugDump enables a debug dump of the anchored morpheme/word pairs to
// dir/anchored.json on each call. No deconjugation trace is written.
func WithDebugDump(dir string) Option {
	return func(c *config) {
		c.debugDir = dir
		c.debugFilter.Enabled = true
	}
}

// WithDebugFilter narrows WithDebugDump's output to inputs matching exact
// and/or contains.
func WithDebugFilter(exact, contains string) Option {
	return func(c *config) {
		c.debugFilter.Exact = exact
		c.debugFilter.Contains = contains
	}
}

// WithAnalyzer injects an Analyzer, bypassing the default kagome backend.
// Tests use this to drive the pipeline from a fixed morpheme stream.
func WithAnalyzer(a analyzer.Analyzer) Option {
	return func(c *config) { c.analyzer = a }
}

// WithLexicon injects an already-built Lexicon, bypassing archive loading.
func WithLexicon(l *lexicon.Lexicon) Option {
	return func(c *config) { c.lexicon = l }
}

// WithLexiconCache loads the dictionary archive through cache, so Segmenters
// built against the same archive set share one Lexicon.
func WithLexiconCache(cache *lexicon.Cache) Option {
	return func(c *config) { c.lexiconCache = cache }
}

// WithRules injects an already-parsed deconjugator rule set, bypassing
// rule-file loading. Passing nil builds a Segmenter with no deconjugation
// rules at all; omit the option to load the default rule file instead.
func WithRules(rules []deconjugate.Rule) Option {
	return func(c *config) {
		c.rules = rules
		c.rulesSet = true
	}
}

// NewSegmenter builds a Segmenter, resolving the dictionary archive and
// rule file from their configured or default locations unless
// WithLexicon/WithRules/WithAnalyzer override the corresponding stage.
func NewSegmenter(opts ...Option) (*Segmenter, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	lex := cfg.lexicon
	if lex == nil {
		path := resolveDictionaryPath(cfg.dictionaryPath)
		var loaded *lexicon.Lexicon
		var err error
		if cfg.lexiconCache != nil {
			loaded, err = cfg.lexiconCache.Load(lexicon.DirZipOpener{}, path)
		} else {
			loaded, err = lexicon.Load(lexicon.DirZipOpener{}, path)
		}
		if err != nil {
			return nil, err
		}
		lex = loaded
	}

	rules := cfg.rules
	if !cfg.rulesSet {
		path := cfg.rulesPath
		if path == "" {
			path = filepath.Join(defaultResourceDir, "deconjugation_rules.json")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, jperr.New("tokenize.NewSegmenter", jperr.ResourceMissing, err)
		}
		parsed, err := deconjugate.LoadRules(data)
		if err != nil {
			return nil, jperr.New("tokenize.NewSegmenter", jperr.MalformedRule, err)
		}
		rules = parsed
	}

	an := cfg.analyzer
	if an == nil {
		kagome, err := analyzer.NewKagome()
		if err != nil {
			return nil, err
		}
		an = kagome
	}

	if !cfg.debugFilter.Enabled {
		cfg.debugFilter = jplog.FilterFromEnv()
	}

	return &Segmenter{
		analyzer:    an,
		anchor:      anchor.New(lex, deconjugate.New(rules)),
		debugDir:    cfg.debugDir,
		debugFilter: cfg.debugFilter,
	}, nil
}

func resolveDictionaryPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(systemDicEnv); env != "" {
		return env
	}
	return filepath.Join(defaultResourceDir, "jmdict", "jmdict_english.zip")
}

type anchoredPair struct {
	Morpheme morph.Morpheme
	Word     anchor.AnchoredWord
}

// wordClean reduces a merged morpheme's surface to the characters the
// anchoring stage can act on: ASCII alphanumerics, kana, CJK ideographs,
// fullwidth letters and digits, the iteration mark and the fullwidth period.
var wordClean = regexp.MustCompile(`[^a-zA-Z0-9\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}` +
	`\x{FF21}-\x{FF3A}\x{FF41}-\x{FF5A}\x{FF10}-\x{FF19}\x{3005}\x{FF0E}]`)

// anchorAll preprocesses, analyzes, merges and anchors text, returning
// every morpheme that was successfully anchored to a dictionary
// word. The hot path never errors: a morpheme anchoring step that fails
// simply contributes nothing to the result.
func (s *Segmenter) anchorAll(ctx context.Context, text string) ([]anchoredPair, error) {
	preprocessed := merge.Preprocess(text)
	morphemes, err := s.analyzer.Analyze(ctx, preprocessed, analyzer.ModeNormal)
	if err != nil {
		return nil, fmt.Errorf("tokenize: analyze: %w", err)
	}
	merged := merge.Pipeline(morphemes)

	cleaned := make([]morph.Morpheme, 0, len(merged))
	for _, m := range merged {
		t := wordClean.ReplaceAllString(m.Text, "")
		t = strings.ReplaceAll(t, "ッー", "")
		if t == "" {
			continue
		}
		m.Text = t
		cleaned = append(cleaned, m)
	}

	pairs := make([]anchoredPair, 0, len(cleaned))
	for _, m := range cleaned {
		aw, ok := s.anchor.Anchor(m)
		if !ok {
			jplog.Debug(s.debugFilter, text, "anchor.miss", map[string]string{"text": m.Text})
			continue
		}
		pairs = append(pairs, anchoredPair{Morpheme: m, Word: aw})
	}
	if s.debugDir != "" && s.debugFilter.Allows(text) {
		_ = jplog.DumpJSON(s.debugDir, "anchored", pairs)
	}
	return pairs, nil
}

// Segment runs the full pipeline over text and returns the ordered list of
// surface substrings (dictionary-anchored tokens interleaved with literal
// gaps) whose concatenation reproduces text exactly.
func (s *Segmenter) Segment(ctx context.Context, text string) ([]string, error) {
	pairs, err := s.anchorAll(ctx, text)
	if err != nil {
		return nil, err
	}
	words := make([]anchor.AnchoredWord, len(pairs))
	for i, p := range pairs {
		words[i] = p.Word
	}
	return Tokenize(text, words), nil
}

// CollectMatches runs the full pipeline over text and returns one
// MatchResult per anchored span, enriched with the matched dictionary
// word's spellings, readings, and definitions.
func (s *Segmenter) CollectMatches(ctx context.Context, text string) ([]MatchResult, error) {
	pairs, err := s.anchorAll(ctx, text)
	if err != nil {
		return nil, err
	}
	words := make([]anchor.AnchoredWord, len(pairs))
	for i, p := range pairs {
		words[i] = p.Word
	}
	spans, _ := locate(text, words)

	out := make([]MatchResult, 0, len(spans))
	for _, sp := range spans {
		jm := s.anchor.Lexicon.Words[sp.word.WordID]
		if jm == nil {
			continue
		}
		labels := make([]string, 0, len(sp.word.POS))
		for _, p := range sp.word.POS {
			labels = append(labels, p.String())
		}
		out = append(out, MatchResult{
			Surface:       sp.word.OriginalText,
			StartIndex:    sp.start,
			WordID:        sp.word.WordID,
			Spellings:     jm.Spellings,
			Readings:      jm.Readings,
			AnalyzerPOS:   labels,
			DictionaryPOS: jm.PartsOfSpeech,
			Definitions:   jm.Definitions,
		})
	}
	return out, nil
}
