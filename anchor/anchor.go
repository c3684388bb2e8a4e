// Package anchor implements the per-morpheme dictionary anchoring stage:
// reconciling a merged morpheme (directly, or through the deconjugator's
// candidate base forms) against the Lexicon, choosing a best word by
// priority, resolving a reading index, and producing an AnchoredWord.
package anchor

import (
	"sort"
	"unicode"

	"jpsegment/deconjugate"
	"jpsegment/kana"
	"jpsegment/lexicon"
	"jpsegment/morph"
	"jpsegment/postag"
)

// AnchoredWord binds a morpheme's surface text to a specific dictionary
// entry, reading, and part-of-speech assignment.
type AnchoredWord struct {
	WordID       int
	OriginalText string
	ReadingIndex int
	POS          []postag.POS
}

// maxFallbackAttempts bounds the retry loop: at most three anchoring
// attempts per morpheme, with a deterministic surface fallback applied
// between each.
const maxFallbackAttempts = 3

// Anchor holds the read-only collaborators a dictionary-anchoring pass
// needs: the indexed lexicon and the deconjugator's rule table. Both are
// immutable after construction and safe to share across goroutines.
type Anchor struct {
	Lexicon      *lexicon.Lexicon
	Deconjugator *deconjugate.Deconjugator
}

// New builds an Anchor over lex and deconj.
func New(lex *lexicon.Lexicon, deconj *deconjugate.Deconjugator) *Anchor {
	return &Anchor{Lexicon: lex, Deconjugator: deconj}
}

var verbAdjectivePrimary = map[postag.POS]bool{
	postag.Verb: true, postag.IAdjective: true, postag.Auxiliary: true, postag.NaAdjective: true,
}

var verbAdjectiveFallbackPOS = []postag.POS{postag.Verb, postag.IAdjective, postag.NaAdjective}

// Anchor attempts to produce an AnchoredWord for m, trying the noun and
// verb/adjective strategies (ordered by the morpheme's primary POS) across
// up to three surface-fallback attempts.
func (a *Anchor) Anchor(m morph.Morpheme) (AnchoredWord, bool) {
	original := m.Text
	text := m.Text
	fb := fallbackState{}

	for attempt := 0; attempt < maxFallbackAttempts; attempt++ {
		mm := m
		mm.Text = text
		if aw, ok := a.dispatch(mm); ok {
			aw.OriginalText = original
			return aw, true
		}
		next, changed := fb.next(text)
		if !changed {
			break
		}
		text = next
	}
	return AnchoredWord{}, false
}

func (a *Anchor) dispatch(m morph.Morpheme) (AnchoredWord, bool) {
	verbAdjPrimary := verbAdjectivePrimary[m.PartOfSpeech] || m.Section1 == postag.Adjectival
	if verbAdjPrimary {
		if aw, ok := a.deconjugateVerbOrAdjective(m); ok {
			return aw, true
		}
		return a.deconjugateWord(m)
	}
	if aw, ok := a.deconjugateWord(m); ok {
		return aw, true
	}
	origPOS := m.PartOfSpeech
	for _, candidate := range verbAdjectiveFallbackPOS {
		m.PartOfSpeech = candidate
		if aw, ok := a.deconjugateVerbOrAdjective(m); ok {
			m.PartOfSpeech = origPOS
			return aw, true
		}
	}
	m.PartOfSpeech = origPOS
	return AnchoredWord{}, false
}

// fallbackState tracks which of the three deterministic surface fallbacks
// have already fired, since each applies at most once across the retry
// loop regardless of how many attempts remain.
type fallbackState struct {
	trimmed  bool
	droppedO bool
	stripped bool
}

func (s *fallbackState) next(text string) (string, bool) {
	runes := []rune(text)
	if !s.trimmed && len(runes) > 2 {
		last := runes[len(runes)-1]
		prev := runes[len(runes)-2]
		if last == 'っ' || last == 'ー' || last == prev {
			s.trimmed = true
			return string(runes[:len(runes)-1]), true
		}
	}
	if !s.droppedO && len(runes) > 0 && runes[0] == 'お' {
		s.droppedO = true
		return string(runes[1:]), true
	}
	if !s.stripped && containsRune(text, 'ー') {
		s.stripped = true
		return removeRune(text, 'ー'), true
	}
	return text, false
}

func containsRune(s string, r rune) bool {
	for _, ch := range s {
		if ch == r {
			return true
		}
	}
	return false
}

func removeRune(s string, r rune) string {
	out := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch != r {
			out = append(out, ch)
		}
	}
	return string(out)
}

// deconjugateWord is the noun/other strategy: a direct lexicon lookup of
// the morpheme's surface (and its hiragana-folded form), filtered and
// ranked by part-of-speech match and priority score.
func (a *Anchor) deconjugateWord(m morph.Morpheme) (AnchoredWord, bool) {
	if isAllDigits(m.Text) || isSingleLetter(m.Text) {
		return AnchoredWord{}, false
	}

	ids := a.Lexicon.Lookup(m.Text)
	if foldedIDs := a.Lexicon.Lookup(kana.ToHiraganaPreserveLong(m.Text)); len(foldedIDs) > 0 {
		// The merged list is sorted; a surface-only hit keeps lookup order.
		ids = mergeIDs(ids, foldedIDs)
	}
	if len(ids) == 0 {
		return AnchoredWord{}, false
	}

	type candidate struct {
		word  *lexicon.Word
		score int
	}
	isKanaSurface := isKanaOnly(m.Text)
	var matches []candidate
	for _, id := range ids {
		w := a.Lexicon.Words[id]
		if w == nil {
			continue
		}
		if wordHasPOS(w, m.PartOfSpeech) {
			matches = append(matches, candidate{w, w.PriorityScore(isKanaSurface)})
		}
	}

	var chosen *lexicon.Word
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
		chosen = matches[0].word
	} else {
		chosen = a.Lexicon.Words[ids[0]]
		if chosen == nil {
			return AnchoredWord{}, false
		}
	}

	idx, ok := computeReadingIndex(chosen, m.Text)
	if !ok {
		return AnchoredWord{}, false
	}
	return AnchoredWord{WordID: chosen.ID, ReadingIndex: idx, POS: []postag.POS{m.PartOfSpeech}}, true
}

// deconjugateVerbOrAdjective is the verb/adjective strategy: it runs the
// deconjugator over the morpheme's hiragana-expanded surface, looks up
// every resulting candidate form in the lexicon, and ranks matches by how
// closely the matched form key resembles the morpheme's own dictionary
// form or surface.
func (a *Anchor) deconjugateVerbOrAdjective(m morph.Morpheme) (AnchoredWord, bool) {
	if a.Deconjugator == nil {
		return AnchoredWord{}, false
	}
	normalized := kana.ToHiraganaExpandLong(m.Text)
	forms := a.Deconjugator.Deconjugate(normalized)
	sort.SliceStable(forms, func(i, j int) bool {
		li, lj := len([]rune(forms[i].Text)), len([]rune(forms[j].Text))
		if li != lj {
			return li > lj
		}
		return forms[i].Text < forms[j].Text
	})

	type keyed struct {
		key  string
		ids  []int
		rank int
	}
	seen := map[string]bool{}
	dictForm := m.DictionaryForm
	if dictForm == "" {
		dictForm = m.Text
	}
	wantDict := kana.ToHiraganaPreserveLong(dictForm)
	wantSurface := kana.ToHiraganaPreserveLong(m.Text)
	var candidates []keyed
	for _, f := range forms {
		if seen[f.Text] {
			continue
		}
		ids := a.Lexicon.Lookup(f.Text)
		if len(ids) == 0 {
			continue
		}
		seen[f.Text] = true
		rank := 2
		switch f.Text {
		case wantDict:
			rank = 0
		case wantSurface:
			rank = 1
		}
		candidates = append(candidates, keyed{key: f.Text, ids: ids, rank: rank})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].rank < candidates[j].rank })

	for _, c := range candidates {
		for _, id := range c.ids {
			w := a.Lexicon.Words[id]
			if w == nil || !wordHasPOS(w, m.PartOfSpeech) {
				continue
			}
			idx, ok := computeReadingIndex(w, c.key)
			if !ok {
				idx = 0
			}
			return AnchoredWord{WordID: w.ID, ReadingIndex: idx, POS: []postag.POS{m.PartOfSpeech}}, true
		}
	}
	return AnchoredWord{}, false
}

// computeReadingIndex resolves query against jm's reading list: try an
// exact match, then a hiragana-preserving fold of both sides, then a
// hiragana-expanding fold of both sides.
func computeReadingIndex(jm *lexicon.Word, query string) (int, bool) {
	if idx := jm.ReadingIndex(query); idx >= 0 {
		return idx, true
	}
	preserved := kana.ToHiraganaPreserveLong(query)
	for i, r := range jm.Readings {
		if kana.ToHiraganaPreserveLong(r) == preserved {
			return i, true
		}
	}
	expanded := kana.ToHiraganaExpandLong(query)
	for i, r := range jm.Readings {
		if kana.ToHiraganaExpandLong(r) == expanded {
			return i, true
		}
	}
	return 0, false
}

func wordHasPOS(w *lexicon.Word, p postag.POS) bool {
	for _, tag := range w.PartsOfSpeech {
		if postag.DecodePOS(tag) == p {
			return true
		}
	}
	return false
}

func mergeIDs(a, b []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(unicode.IsDigit(r) && r <= unicode.MaxASCII) && !(r >= 0xFF10 && r <= 0xFF19) {
			return false
		}
	}
	return true
}

func isSingleLetter(s string) bool {
	runes := []rune(s)
	if len(runes) != 1 {
		return false
	}
	r := runes[0]
	isASCIILetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	isFullwidthLetter := (r >= 0xFF21 && r <= 0xFF3A) || (r >= 0xFF41 && r <= 0xFF5A)
	return isASCIILetter || isFullwidthLetter
}

func isKanaOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)) {
			return false
		}
	}
	return true
}
