package lexicon

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

type memZip struct {
	name string
	data []byte
}

type memOpener struct {
	files []memZip
}

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

func containsSlice(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func TestLoadIngestsTermBank(t *testing.T) {
	termBank := `[
		["本", "ほん", "n", "", "", ["book"], 1234, "ichi1"],
		["ホン", "ほん", "n", "", "", ["origin (alt spelling)"], 1234, ""]
	]`
	data := buildZip(t, map[string]string{"term_bank_1.json": termBank})
	opener := memOpener{files: []memZip{{name: "jmdict_english.zip", data: data}}}

	lex, err := Load(opener, "jmdict_english.zip")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	w := lex.Words[1234]
	if w == nil {
		t.Fatal("expected word 1234 to be present")
	}
	if w.ReadingIndex("本") == -1 && !containsSlice(w.Spellings, "本") {
		t.Errorf("spellings = %+v", w.Spellings)
	}
	if !containsSlice(w.Spellings, "ホン") {
		t.Errorf("spellings = %+v", w.Spellings)
	}
	if w.ReadingIndex("ほん") == -1 {
		t.Errorf("readings = %+v", w.Readings)
	}
	if len(w.Definitions) != 2 {
		t.Errorf("definitions = %+v", w.Definitions)
	}
	ids := lex.Lookup("本")
	if len(ids) != 1 || ids[0] != 1234 {
		t.Errorf("Lookup(本) = %+v", ids)
	}
	idsReading := lex.Lookup("ほん")
	if len(idsReading) != 1 || idsReading[0] != 1234 {
		t.Errorf("Lookup(ほん) = %+v", idsReading)
	}
}

func TestCustomWordsInjected(t *testing.T) {
	data := buildZip(t, map[string]string{"term_bank_1.json": "[]"})
	opener := memOpener{files: []memZip{{name: "jmdict_english.zip", data: data}}}
	lex, err := Load(opener, "jmdict_english.zip")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lex.Words[8000000] == nil {
		t.Error("expected custom word でした injected")
	}
	ids := lex.Lookup("でした")
	if len(ids) == 0 {
		t.Error("expected でした indexed in lookups")
	}
}

func TestPriorityScore(t *testing.T) {
	w := &Word{Priorities: []string{"ichi1"}}
	if got := w.PriorityScore(false); got != 20 {
		t.Errorf("PriorityScore ichi1 = %d, want 20", got)
	}
	w2 := &Word{Priorities: []string{"nf12"}}
	if got := w2.PriorityScore(false); got != 4 {
		t.Errorf("PriorityScore nf12 = %d, want 4", got)
	}
	// nf ranks round half to even: nf05 -> 5-0, nf15 -> 5-2.
	if got := (&Word{Priorities: []string{"nf05"}}).PriorityScore(false); got != 5 {
		t.Errorf("PriorityScore nf05 = %d, want 5", got)
	}
	if got := (&Word{Priorities: []string{"nf15"}}).PriorityScore(false); got != 3 {
		t.Errorf("PriorityScore nf15 = %d, want 3", got)
	}
	w3 := &Word{PartsOfSpeech: []string{"uk"}}
	if got := w3.PriorityScore(true); got != 10 {
		t.Errorf("PriorityScore uk+kana = %d, want 10", got)
	}
	if got := w3.PriorityScore(false); got != -10 {
		t.Errorf("PriorityScore uk+notkana = %d, want -10", got)
	}
}

func TestPriorityScoreMonotonicWithIchiTier(t *testing.T) {
	base := &Word{}
	withIchi2 := &Word{Priorities: []string{"ichi2"}}
	withIchi1 := &Word{Priorities: []string{"ichi1"}}
	if !(base.PriorityScore(false) < withIchi2.PriorityScore(false)) {
		t.Errorf("expected ichi2 score > base score")
	}
	if !(withIchi2.PriorityScore(false) < withIchi1.PriorityScore(false)) {
		t.Errorf("expected ichi1 score > ichi2 score")
	}
}

func TestCacheReturnsSameLexiconForSameArchives(t *testing.T) {
	termBank := `[
		["本", "ほん", "n", "", "", ["book"], 1234, "ichi1"]
	]`
	data := buildZip(t, map[string]string{"term_bank_1.json": termBank})
	opener := memOpener{files: []memZip{{name: "jmdict_english.zip", data: data}}}

	cache := NewCache()
	first, err := cache.Load(opener, "jmdict_english.zip")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	second, err := cache.Load(opener, "jmdict_english.zip")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if first != second {
		t.Error("expected cached load to return the same Lexicon instance")
	}
}

func TestExtractDefinitionsSkipsFormsTable(t *testing.T) {
	raw := []any{
		map[string]any{"text": "to eat", "lang": "en"},
		map[string]any{"data": map[string]any{"content": "formsTable"}, "content": []any{"skip me"}},
	}
	got := extractDefinitions(raw)
	if len(got) != 1 || got[0] != "to eat" {
		t.Errorf("extractDefinitions = %+v", got)
	}
}
