// Package lexicon loads a Yomitan-format JMdict/JMnedict archive (one or
// more zip files each containing term_bank_*.json files) into an in-memory
// word index usable for dictionary anchoring.
package lexicon

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"jpsegment/jperr"
	"jpsegment/kana"
)

const (
	termRowMinLength   = 7
	priorityFieldIdx   = 7
	definitionFieldIdx = 5
)

// Word is one JMdict/JMnedict entry: a dictionary sense keyed by its
// sequence id, with every reading/spelling/POS tag/priority tag/definition
// observed for that id across every term_bank row that referenced it.
type Word struct {
	ID            int
	Readings      []string
	Spellings     []string
	PartsOfSpeech []string
	Priorities    []string
	Definitions   []string
}

// ReadingIndex returns the position of reading in w.Readings, or -1 if it
// is not one of the word's readings. Reading order is fixed to first-seen
// ingestion order so a resolved index is reproducible across runs and
// across re-ingesting the same archive.
func (w *Word) ReadingIndex(reading string) int {
	for i, r := range w.Readings {
		if r == reading {
			return i
		}
	}
	return -1
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// DirZipOpener implements ZipOpener against the real filesystem.
type DirZipOpener struct{}

// Glob lists every entry directly inside dir.
func (DirZipOpener) Glob(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// Open opens path for reading.
func (DirZipOpener) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// HasPOS reports whether tag appears among the word's dictionary-native
// part-of-speech abbreviations (e.g. "n", "v5k", "adj-i").
func (w *Word) HasPOS(tag string) bool {
	for _, p := range w.PartsOfSpeech {
		if p == tag {
			return true
		}
	}
	return false
}

// PriorityScore ports the dictionary's word-ranking heuristic: jiten
// override, ichi/news/gai/nf tiering, spec fallback, and a kana-usage bias
// for words tagged "uk" (usually kana).
func (w *Word) PriorityScore(isKana bool) int {
	score := 0
	if hasAny(w.Priorities, "jiten") {
		score += 100
	}
	if hasAny(w.Priorities, "ichi1", "ichi") {
		score += 20
	} else if hasAny(w.Priorities, "ichi2") {
		score += 10
	}
	if hasPrefix(w.Priorities, "news1") {
		score += 15
	}
	if hasPrefix(w.Priorities, "news2") {
		score += 10
	}
	if hasAny(w.Priorities, "gai1", "gai2") {
		score += 5
	}
	for _, p := range w.Priorities {
		if strings.HasPrefix(p, "nf") && isDigits(p[2:]) {
			n, _ := strconv.Atoi(p[2:])
			bonus := 5 - int(math.RoundToEven(float64(n)/10.0))
			if bonus < 0 {
				bonus = 0
			}
			score += bonus
			break
		}
	}
	if score == 0 {
		if hasAny(w.Priorities, "spec1") {
			score += 15
		} else if hasAny(w.Priorities, "spec2") {
			score += 5
		}
	}
	if w.HasPOS("uk") {
		if isKana {
			score += 10
		} else {
			score -= 10
		}
	}
	return score
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasAny(list []string, vals ...string) bool {
	for _, v := range list {
		for _, want := range vals {
			if v == want {
				return true
			}
		}
	}
	return false
}

func hasPrefix(list []string, prefix string) bool {
	for _, v := range list {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

// Lexicon is the loaded dictionary: every Word keyed by sequence id, plus a
// lookup index from surface/reading variant strings to the word ids that
// produced them, in first-seen order.
type Lexicon struct {
	Words   map[int]*Word
	lookups map[string][]int
}

// Lookup returns the word ids indexed under key, or nil if key is unknown.
func (l *Lexicon) Lookup(key string) []int {
	return l.lookups[key]
}

// Load reads every jmdict*/jmnedict*.zip sibling of primaryZip (or just
// primaryZip itself if none match) via fsys, ingesting each term_bank_*.json
// file found inside.
func Load(fsys ZipOpener, primaryZip string) (*Lexicon, error) {
	zips, err := resolveArchives(fsys, primaryZip)
	if err != nil {
		return nil, err
	}
	return loadArchives(fsys, zips)
}

// resolveArchives lists the archive set Load would ingest for primaryZip, in
// sorted order. The sorted list doubles as the content-address a Cache keys
// its entries by.
func resolveArchives(fsys ZipOpener, primaryZip string) ([]string, error) {
	names, err := fsys.Glob(filepath.Dir(primaryZip))
	if err != nil {
		return nil, jperr.New("lexicon.Load", jperr.ResourceMissing, err)
	}
	var zips []string
	for _, n := range names {
		base := strings.ToLower(filepath.Base(n))
		if strings.HasSuffix(base, ".zip") && (strings.HasPrefix(base, "jmdict") || strings.HasPrefix(base, "jmnedict")) {
			zips = append(zips, n)
		}
	}
	if len(zips) == 0 {
		zips = []string{primaryZip}
	}
	sort.Strings(zips)
	return zips, nil
}

func loadArchives(fsys ZipOpener, zips []string) (*Lexicon, error) {
	words := map[int]*Word{}
	for _, z := range zips {
		if err := ingestZip(fsys, z, words); err != nil {
			return nil, err
		}
	}
	injectCustomWords(words)

	lookups := map[string][]int{}
	for id, w := range words {
		buildLookups(lookups, id, w)
	}
	return &Lexicon{Words: words, lookups: lookups}, nil
}

// Cache memoizes loaded lexicons keyed by the sorted tuple of archive paths
// they were built from. Entries are append-only and reference-stable for the
// cache's lifetime, so two Segmenters sharing a Cache share one Lexicon.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Lexicon
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]*Lexicon{}}
}

// Load resolves primaryZip's archive set and returns the cached Lexicon for
// it, loading and caching on first use.
func (c *Cache) Load(fsys ZipOpener, primaryZip string) (*Lexicon, error) {
	zips, err := resolveArchives(fsys, primaryZip)
	if err != nil {
		return nil, err
	}
	key := strings.Join(zips, "\x00")

	c.mu.Lock()
	lex, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return lex, nil
	}

	loaded, err := loadArchives(fsys, zips)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = loaded
	return loaded, nil
}

// ZipOpener abstracts the filesystem access Load needs, so tests can supply
// an in-memory archive set instead of touching disk.
type ZipOpener interface {
	Glob(dir string) ([]string, error)
	Open(path string) (io.ReadCloser, error)
}

func ingestZip(fsys ZipOpener, path string, words map[int]*Word) error {
	rc, err := fsys.Open(path)
	if err != nil {
		return jperr.New(fmt.Sprintf("lexicon.Load(%s)", path), jperr.ResourceMissing, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return jperr.New(fmt.Sprintf("lexicon.Load(%s)", path), jperr.ResourceMissing, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return jperr.New(fmt.Sprintf("lexicon.Load(%s)", path), jperr.MalformedLexicon, err)
	}
	for _, f := range zr.File {
		name := f.Name
		if !strings.HasSuffix(name, ".json") || !strings.HasPrefix(name, "term_bank_") {
			continue
		}
		rc2, err := f.Open()
		if err != nil {
			return jperr.New(fmt.Sprintf("lexicon.Load(%s/%s)", path, name), jperr.MalformedLexicon, err)
		}
		raw, err := io.ReadAll(rc2)
		rc2.Close()
		if err != nil {
			return jperr.New(fmt.Sprintf("lexicon.Load(%s/%s)", path, name), jperr.MalformedLexicon, err)
		}
		var rows [][]json.RawMessage
		if err := json.Unmarshal(raw, &rows); err != nil {
			return jperr.New(fmt.Sprintf("lexicon.Load(%s/%s)", path, name), jperr.MalformedLexicon, err)
		}
		for _, row := range rows {
			ingestRow(row, words)
		}
	}
	return nil
}

func ingestRow(row []json.RawMessage, words map[int]*Word) {
	if len(row) < termRowMinLength {
		return
	}
	var term, reading, posStr string
	var seq int
	_ = json.Unmarshal(row[0], &term)
	_ = json.Unmarshal(row[1], &reading)
	_ = json.Unmarshal(row[2], &posStr)
	if err := json.Unmarshal(row[6], &seq); err != nil {
		return
	}

	w := words[seq]
	if w == nil {
		w = &Word{ID: seq}
		words[seq] = w
	}
	if reading != "" {
		w.Readings = appendUnique(w.Readings, reading)
	}
	if term != "" {
		w.Spellings = appendUnique(w.Spellings, term)
		w.Readings = appendUnique(w.Readings, term)
	}
	for _, tag := range strings.Fields(posStr) {
		if tag != "" && !containsStr(w.PartsOfSpeech, tag) {
			w.PartsOfSpeech = append(w.PartsOfSpeech, tag)
		}
	}
	if len(row) > priorityFieldIdx {
		var raw string
		if err := json.Unmarshal(row[priorityFieldIdx], &raw); err == nil && raw != "" {
			raw = strings.TrimSpace(strings.ReplaceAll(raw, "⭐", ""))
			for _, tok := range strings.Fields(raw) {
				if tok == "ichi" {
					tok = "ichi1"
				}
				if !containsStr(w.Priorities, tok) {
					w.Priorities = append(w.Priorities, tok)
				}
			}
		}
	}
	if len(row) > definitionFieldIdx {
		var raw any
		if err := json.Unmarshal(row[definitionFieldIdx], &raw); err == nil && raw != nil {
			for _, d := range extractDefinitions(raw) {
				if !containsStr(w.Definitions, d) {
					w.Definitions = append(w.Definitions, d)
				}
			}
		}
	}
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func looksEnglish(text string) bool {
	for _, ch := range text {
		if ch <= unicode.MaxASCII && unicode.IsLetter(ch) {
			return true
		}
	}
	return false
}

// extractDefinitions flattens a Yomitan structured-content definitions tree
// into plain English text lines, skipping any "formsTable" subtree and
// deduping while preserving first-seen order.
func extractDefinitions(raw any) []string {
	var collected []string
	var walk func(node any, lang string)
	walk = func(node any, lang string) {
		switch v := node.(type) {
		case string:
			text := strings.TrimSpace(v)
			if text != "" && (lang == "en" || (lang == "" && looksEnglish(text))) {
				collected = append(collected, text)
			}
		case map[string]any:
			nodeLang := lang
			if l, ok := v["lang"].(string); ok {
				nodeLang = l
			}
			if data, ok := v["data"].(map[string]any); ok {
				if content, ok := data["content"].(string); ok && content == "formsTable" {
					return
				}
			}
			if text, ok := v["text"]; ok {
				if _, isMap := text.(map[string]any); !isMap {
					walk(text, nodeLang)
					return
				}
			}
			if content, ok := v["content"]; ok {
				walk(content, nodeLang)
			}
		case []any:
			for _, child := range v {
				walk(child, lang)
			}
		}
	}
	walk(raw, "")

	seen := map[string]bool{}
	var unique []string
	for _, t := range collected {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	return unique
}

func lkAdd(lookups map[string][]int, key string, id int) {
	if key == "" {
		return
	}
	arr := lookups[key]
	if len(arr) == 0 || arr[len(arr)-1] != id {
		lookups[key] = append(arr, id)
	}
}

func buildLookups(lookups map[string][]int, id int, w *Word) {
	for _, s := range w.Spellings {
		lkAdd(lookups, s, id)
		hw := kana.ToHalfwidthASCII(s)
		fw := kana.ToFullwidthASCII(s)
		if hw != s {
			lkAdd(lookups, hw, id)
		}
		if fw != s {
			lkAdd(lookups, fw, id)
		}
	}
	for _, r := range w.Readings {
		key1 := kana.ToHiraganaPreserveLong(r)
		key2 := kana.ToHiraganaExpandLong(r)
		lkAdd(lookups, key1, id)
		if key2 != key1 {
			lkAdd(lookups, key2, id)
		}
		if allKatakana(r) {
			lkAdd(lookups, r, id)
		}
		hw := kana.ToHalfwidthASCII(r)
		fw := kana.ToFullwidthASCII(r)
		if hw != r {
			lkAdd(lookups, hw, id)
		}
		if fw != r {
			lkAdd(lookups, fw, id)
		}
	}
}

func allKatakana(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !kana.IsKatakana(ch) {
			return false
		}
	}
	return true
}

// injectCustomWords adds the three hand-maintained entries the dictionary
// loader has always shipped alongside the official archives.
func injectCustomWords(words map[int]*Word) {
	words[8000000] = &Word{
		ID:            8000000,
		Readings:      []string{"でした"},
		Spellings:     []string{"でした"},
		PartsOfSpeech: []string{"exp"},
	}
	words[8000001] = &Word{
		ID:            8000001,
		Readings:      []string{"イクシオトキシン"},
		Spellings:     []string{"イクシオトキシン"},
		PartsOfSpeech: []string{"n"},
	}
	words[8000002] = &Word{
		ID:            8000002,
		Readings:      []string{"逢魔", "おうま"},
		Spellings:     []string{"逢魔"},
		PartsOfSpeech: []string{"exp"},
	}
}
