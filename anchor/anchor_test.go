package anchor

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"jpsegment/deconjugate"
	"jpsegment/lexicon"
	"jpsegment/morph"
	"jpsegment/postag"
)

type memZip struct {
	name string
	data []byte
}

type memOpener struct{ files []memZip }

func (m memOpener) Glob(dir string) ([]string, error) {
	names := make([]string, 0, len(m.files))
	for _, f := range m.files {
		names = append(names, f.name)
	}
	return names, nil
}

func (m memOpener) Open(path string) (io.ReadCloser, error) {
	for _, f := range m.files {
		if f.name == path {
			return io.NopCloser(bytes.NewReader(f.data)), nil
		}
	}
	return nil, io.ErrUnexpectedEOF
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func testLexicon(t *testing.T, termBank string) *lexicon.Lexicon {
	t.Helper()
	data := buildZip(t, map[string]string{"term_bank_1.json": termBank})
	opener := memOpener{files: []memZip{{name: "jmdict_english.zip", data: data}}}
	lex, err := lexicon.Load(opener, "jmdict_english.zip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return lex
}

func TestAnchorNounStrategy(t *testing.T) {
	lex := testLexicon(t, `[
		["本", "ほん", "n", "", "", ["book"], 1001, "ichi1"]
	]`)
	a := New(lex, deconjugate.New(nil))

	m := morph.Morpheme{Text: "本", PartOfSpeech: postag.Noun, DictionaryForm: "本", Reading: "ホン"}
	aw, ok := a.Anchor(m)
	if !ok {
		t.Fatal("expected anchor hit")
	}
	if aw.WordID != 1001 {
		t.Errorf("WordID = %d, want 1001", aw.WordID)
	}
	if aw.OriginalText != "本" {
		t.Errorf("OriginalText = %q", aw.OriginalText)
	}
}

func TestAnchorRejectsDigitsAndSingleLetters(t *testing.T) {
	lex := testLexicon(t, `[]`)
	a := New(lex, deconjugate.New(nil))

	if _, ok := a.Anchor(morph.Morpheme{Text: "123", PartOfSpeech: postag.Noun}); ok {
		t.Error("expected digits to be rejected")
	}
	if _, ok := a.Anchor(morph.Morpheme{Text: "A", PartOfSpeech: postag.Noun}); ok {
		t.Error("expected single ascii letter to be rejected")
	}
}

func TestAnchorVerbStrategyDeconjugates(t *testing.T) {
	lex := testLexicon(t, `[
		["食べる", "たべる", "v1", "", "", ["to eat"], 2002, "ichi1"]
	]`)
	rules := []deconjugate.Rule{
		{Type: deconjugate.StdRule, DecEnd: []string{"る"}, ConEnd: []string{"た"}, Detail: "past"},
	}
	a := New(lex, deconjugate.New(rules))

	m := morph.Morpheme{Text: "食べた", PartOfSpeech: postag.Verb, DictionaryForm: "食べる"}
	aw, ok := a.Anchor(m)
	if !ok {
		t.Fatal("expected verb anchor hit")
	}
	if aw.WordID != 2002 {
		t.Errorf("WordID = %d, want 2002", aw.WordID)
	}
	if aw.OriginalText != "食べた" {
		t.Errorf("OriginalText = %q, want original surface restored", aw.OriginalText)
	}
}

func TestAnchorFallbackDropsDuplicateFinalChar(t *testing.T) {
	lex := testLexicon(t, `[
		["凄い", "すごい", "adj-i", "", "", ["amazing"], 3003, "ichi1"]
	]`)
	a := New(lex, deconjugate.New(nil))

	// すごいい resolves only after the fallback trims the duplicated final
	// character down to すごい.
	m := morph.Morpheme{Text: "すごいい", PartOfSpeech: postag.IAdjective, DictionaryForm: "すごい"}
	aw, ok := a.Anchor(m)
	if !ok {
		t.Fatal("expected anchor hit after trimming the duplicated final char")
	}
	if aw.WordID != 3003 {
		t.Errorf("WordID = %d, want 3003", aw.WordID)
	}
	if aw.OriginalText != "すごいい" {
		t.Errorf("OriginalText = %q, want the untrimmed surface", aw.OriginalText)
	}
}

func TestAnchorIAdjectiveResolvesKanjiSpelling(t *testing.T) {
	lex := testLexicon(t, `[
		["美味しい", "おいしい", "adj-i", "", "", ["delicious"], 4004, "ichi1"]
	]`)
	a := New(lex, deconjugate.New(nil))

	m := morph.Morpheme{Text: "おいしい", PartOfSpeech: postag.IAdjective, DictionaryForm: "おいしい"}
	aw, ok := a.Anchor(m)
	if !ok {
		t.Fatal("expected adjective anchor hit")
	}
	w := lex.Words[aw.WordID]
	if w == nil {
		t.Fatalf("WordID %d not in lexicon", aw.WordID)
	}
	found := false
	for _, s := range w.Spellings {
		if s == "美味しい" {
			found = true
		}
	}
	for _, r := range w.Readings {
		if r == "おいしい" {
			found = true
		}
	}
	if !found {
		t.Errorf("anchored word %+v lacks expected spelling/reading", w)
	}
}

func TestAnchorFallsBackToFirstCandidateWithoutPOSMatch(t *testing.T) {
	lex := testLexicon(t, `[
		["走る", "はしる", "v5r", "", "", ["to run"], 5005, ""]
	]`)
	a := New(lex, deconjugate.New(nil))

	m := morph.Morpheme{Text: "走る", PartOfSpeech: postag.Noun, DictionaryForm: "走る"}
	aw, ok := a.Anchor(m)
	if !ok {
		t.Fatal("expected anchor hit via first-candidate fallback")
	}
	if aw.WordID != 5005 {
		t.Errorf("WordID = %d, want 5005", aw.WordID)
	}
	if len(aw.POS) != 1 || aw.POS[0] != postag.Noun {
		t.Errorf("POS = %+v, want the morpheme's own POS", aw.POS)
	}
}

func TestComputeReadingIndexFallsBackToFoldedForms(t *testing.T) {
	w := &lexicon.Word{Readings: []string{"ホン"}}
	idx, ok := computeReadingIndex(w, "ほん")
	if !ok || idx != 0 {
		t.Errorf("computeReadingIndex = %d,%v want 0,true", idx, ok)
	}
}
