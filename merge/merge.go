// Package merge implements the raw-text preprocessing contract and the
// ordered morpheme-combination passes that turn analyzer output into the
// words the anchor stage will look up.
package merge

import (
	"strings"

	"jpsegment/morph"
	"jpsegment/postag"
)

var defaultCleaner = newCleaner()

// Preprocess strips characters outside the module's accepted set and
// inserts newline/space padding around quotation brackets and sentence
// terminators, matching the analyzer's own preprocessing step exactly so
// later position bookkeeping lines up with the morphemes it returns.
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "<", " ")
	text = strings.ReplaceAll(text, ">", " ")
	text = defaultCleaner.clean(text)
	text = strings.ReplaceAll(text, "「", "\n「 ")
	text = strings.ReplaceAll(text, "」", " 」\n")
	text = strings.ReplaceAll(text, "〈", " \n〈 ")
	text = strings.ReplaceAll(text, "〉", " 〉\n")
	text = strings.ReplaceAll(text, "《", " \n《 ")
	text = strings.ReplaceAll(text, "》", " 》\n")
	text = strings.ReplaceAll(text, "“", " \n“ ")
	text = strings.ReplaceAll(text, "”", " ”\n")
	text = strings.ReplaceAll(text, "―", " ― ")
	text = strings.ReplaceAll(text, "。", " 。\n")
	text = strings.ReplaceAll(text, "！", " ！\n")
	text = strings.ReplaceAll(text, "？", " ？\n")
	text = strings.ReplaceAll(text, "…\r", "。\r")
	text = strings.ReplaceAll(text, "…\n", "。\n")
	return text
}

// cleaner implements the accepted-character allowlist: every rune not in
// one of these ranges or the literal set is dropped from the text.
type cleaner struct {
	ranges [][2]rune
	chars  map[rune]bool
}

func newCleaner() *cleaner {
	c := &cleaner{
		ranges: [][2]rune{
			{0x3040, 0x309F}, // hiragana
			{0x30A0, 0x30FF}, // katakana
			{0x4E00, 0x9FAF}, // CJK unified
			{0xFF21, 0xFF3A}, // fullwidth upper
			{0xFF41, 0xFF5A}, // fullwidth lower
			{0xFF10, 0xFF19}, // fullwidth digit
			{0x3001, 0x3003}, // 、〃
			{0x3008, 0x3011}, // brackets
			{0x3014, 0x301F}, // brackets/quotes
			{0xFF01, 0xFF0F}, // fullwidth punctuation
			{0xFF1A, 0xFF1F}, // fullwidth punctuation
			{0xFF3B, 0xFF3F}, // fullwidth brackets
			{0xFF5B, 0xFF60}, // fullwidth brackets
			{0xFF62, 0xFF65}, // halfwidth brackets
		},
		chars: map[rune]bool{
			0x3005: true, // 々
			0xFF0E: true, // fullwidth period
			'\n':   true,
			0x2026: true, // …
			0x3000: true, // ideographic space
			0x2015: true, // horizontal bar
			0x2500: true, // box drawing
			'(':    true,
			')':    true,
			0x3002: true, // 。
			0xFF01: true, // ！
			0xFF1F: true, // ？
			0x300C: true, // 「
			0x300D: true, // 」
			0xFF09: true, // ）
		},
	}
	return c
}

func (c *cleaner) allowed(r rune) bool {
	if c.chars[r] {
		return true
	}
	for _, rg := range c.ranges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

func (c *cleaner) clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c.allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const (
	minPairLength   = 2
	minTripleLength = 3
	doubleCharLen   = 2
)

// Pipeline runs the full ordered sequence of special-case handling and
// combination passes over words, returning the merged word list.
func Pipeline(words []morph.Morpheme) []morph.Morpheme {
	w := processSpecialCases(words)
	w = combinePrefixes(w)
	w = combineAmounts(w)
	w = combineTte(w)
	w = combineAuxiliaryVerbStem(w)
	w = combineAdverbialParticle(w)
	w = combineSuffix(w)
	w = combineAuxiliary(w)
	w = combineVerbDependants(w)
	w = combineVerbPossibleDependants(w)
	w = combineVerbDependantsSuru(w)
	w = combineVerbDependantsTeiru(w)
	w = combineConjunctiveParticle(w)
	w = combineParticles(w)
	w = combineFinal(w)
	w = separateSuffixHonorifics(w)
	return filterMisparse(w)
}

type special3 struct {
	a, b, c string
	pos     postag.POS
}

type special2 struct {
	a, b string
	pos  postag.POS
}

var special3Cases = []special3{
	{"な", "の", "で", postag.Expression},
	{"で", "は", "ない", postag.Expression},
	{"それ", "で", "も", postag.Conjunction},
	{"なく", "なっ", "た", postag.Verb},
}

var special2Cases = []special2{
	{"じゃ", "ない", postag.Expression},
	{"ええ", "と", postag.Interjection},
	{"どっち", "も", postag.Expression},
	{"そう", "かもしれない", postag.Expression},
	{"ファイル", "名", postag.Noun},
	{"に", "しろ", postag.Expression},
	{"だ", "けど", postag.Conjunction},
	{"だ", "が", postag.Conjunction},
	{"で", "さえ", postag.Expression},
	{"で", "すら", postag.Expression},
	{"と", "いう", postag.Expression},
	{"と", "か", postag.Conjunction},
	{"だ", "から", postag.Conjunction},
	{"これ", "まで", postag.Expression},
	{"それ", "も", postag.Conjunction},
	{"それ", "だけ", postag.Noun},
	{"くせ", "に", postag.Conjunction},
	{"の", "で", postag.Particle},
	{"誰", "も", postag.Expression},
	{"誰", "か", postag.Expression},
	{"すぐ", "に", postag.Adverb},
	{"なん", "か", postag.Particle},
	{"だっ", "た", postag.Expression},
	{"だっ", "たら", postag.Conjunction},
	{"よう", "に", postag.Expression},
	{"ん", "です", postag.Expression},
	{"ん", "だ", postag.Expression},
	{"です", "か", postag.Expression},
}

func processSpecialCases(words []morph.Morpheme) []morph.Morpheme {
	if len(words) == 0 {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	i := 0
	for i < len(words) {
		w1 := words[i]
		if w1.PartOfSpeech == postag.Conjunction && w1.Text == "で" {
			w1.PartOfSpeech = postag.Particle
			out = append(out, w1)
			i++
			continue
		}
		if i+2 < len(words) {
			w2, w3 := words[i+1], words[i+2]
			if w1.DictionaryForm == "する" && w2.Text == "て" && w3.DictionaryForm == "くださる" {
				neww := w1
				neww.Text = w1.Text + w2.Text + w3.Text
				out = append(out, neww)
				i += 3
				continue
			}
			found := false
			for _, sc := range special3Cases {
				if w1.Text == sc.a && w2.Text == sc.b && w3.Text == sc.c {
					neww := w1
					neww.Text = w1.Text + w2.Text + w3.Text
					neww.PartOfSpeech = sc.pos
					out = append(out, neww)
					i += 3
					found = true
					break
				}
			}
			if found {
				continue
			}
		}
		if i+1 < len(words) {
			w2 := words[i+1]
			found := false
			for _, sc := range special2Cases {
				if w1.Text == sc.a && w2.Text == sc.b {
					neww := w1
					neww.Text = w1.Text + w2.Text
					neww.PartOfSpeech = sc.pos
					out = append(out, neww)
					i += 2
					found = true
					break
				}
			}
			if found {
				continue
			}
		}
		if w1.Text == "でしょう" {
			neww := w1
			neww.PartOfSpeech = postag.Expression
			neww.Section1, neww.Section2, neww.Section3 = postag.None_, postag.None_, postag.None_
			out = append(out, neww)
			i++
			continue
		}
		if w1.Text == "だし" {
			da := morph.Morpheme{Text: "だ", DictionaryForm: "だ", PartOfSpeech: postag.Auxiliary, Reading: "だ"}
			shi := morph.Morpheme{Text: "し", DictionaryForm: "し", PartOfSpeech: postag.Conjunction, Reading: "し"}
			out = append(out, da, shi)
			i++
			continue
		}
		if w1.Text == "な" || w1.Text == "に" {
			w1.PartOfSpeech = postag.Particle
		}
		if w1.Text == "よう" {
			w1.PartOfSpeech = postag.Noun
		}
		if w1.Text == "十五" {
			w1.PartOfSpeech = postag.Numeral
		}
		out = append(out, w1)
		i++
	}
	return out
}

func combinePrefixes(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if current.PartOfSpeech == postag.Prefix && current.NormalizedForm != "御" {
			text := current.Text + nxt.Text
			current = nxt
			current.Text = text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

// amountCombinations is a representative set of counter/amount-word pairs
// that fuse into a single noun (e.g. numeral + counter). The full table the
// original ships is a large generated lookup not carried in this module;
// this subset covers 一 through 十 with つ, and 一 through 三 with a handful
// of common counters.
var amountCombinations = map[[2]string]bool{
	{"一", "つ"}: true, {"二", "つ"}: true, {"三", "つ"}: true, {"四", "つ"}: true,
	{"五", "つ"}: true, {"六", "つ"}: true, {"七", "つ"}: true, {"八", "つ"}: true,
	{"九", "つ"}: true, {"十", "つ"}: true,
	{"一", "人"}: true, {"二", "人"}: true, {"三", "人"}: true,
	{"一", "本"}: true, {"二", "本"}: true, {"三", "本"}: true,
	{"一", "個"}: true, {"二", "個"}: true, {"三", "個"}: true,
	{"一", "回"}: true, {"二", "回"}: true, {"三", "回"}: true,
	{"一", "年"}: true, {"二", "年"}: true, {"三", "年"}: true,
	{"一", "時"}: true, {"二", "時"}: true, {"三", "時"}: true,
	{"一", "分"}: true, {"二", "分"}: true, {"三", "分"}: true,
	{"一", "円"}: true, {"二", "円"}: true, {"三", "円"}: true,
	{"一", "日"}: true, {"二", "日"}: true, {"三", "日"}: true,
	{"一", "月"}: true, {"二", "月"}: true, {"三", "月"}: true,
	{"一", "歳"}: true, {"二", "歳"}: true, {"三", "歳"}: true,
}

func combineAmounts(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if (current.HasSection(postag.Amount) || current.HasSection(postag.NumeralSection)) &&
			amountCombinations[[2]string{current.Text, nxt.Text}] {
			text := current.Text + nxt.Text
			current = nxt
			current.Text = text
			current.PartOfSpeech = postag.Noun
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

func combineTte(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if strings.HasSuffix(current.Text, "っ") && strings.HasPrefix(nxt.Text, "て") {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

func combineVerbDependants(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if nxt.HasSection(postag.Dependant) && current.PartOfSpeech == postag.Verb {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

var possibleDependantVerbs = map[string]bool{
	"得る": true, "する": true, "しまう": true, "おる": true, "きる": true,
	"こなす": true, "いく": true, "貰う": true, "いる": true, "ない": true,
}

func combineVerbPossibleDependants(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if nxt.HasSection(postag.PossibleDependant) && current.PartOfSpeech == postag.Verb &&
			possibleDependantVerbs[nxt.DictionaryForm] {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

func combineVerbDependantsSuru(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	i := 0
	for i < len(words) {
		cur := words[i]
		if i+1 < len(words) {
			nxt := words[i+1]
			if cur.HasSection(postag.PossibleSuru) && nxt.DictionaryForm == "する" &&
				nxt.Text != "する" && nxt.Text != "しない" {
				comb := cur
				comb.Text += nxt.Text
				comb.PartOfSpeech = postag.Verb
				out = append(out, comb)
				i += 2
				continue
			}
		}
		out = append(out, cur)
		i++
	}
	return out
}

func combineVerbDependantsTeiru(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minTripleLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	i := 0
	for i < len(words) {
		cur := words[i]
		if i+2 < len(words) {
			n1, n2 := words[i+1], words[i+2]
			if cur.PartOfSpeech == postag.Verb && n1.DictionaryForm == "て" && n2.DictionaryForm == "いる" {
				comb := cur
				comb.Text += n1.Text + n2.Text
				out = append(out, comb)
				i += 3
				continue
			}
		}
		out = append(out, cur)
		i++
	}
	return out
}

func combineAdverbialParticle(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if nxt.HasSection(postag.AdverbialParticle) && (nxt.DictionaryForm == "だり" || nxt.DictionaryForm == "たり") &&
			current.PartOfSpeech == postag.Verb {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

func combineConjunctiveParticle(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	out = append(out, words[0])
	for i := 1; i < len(words); i++ {
		current := words[i]
		prev := &out[len(out)-1]
		combined := false
		if current.HasSection(postag.ConjunctionParticle) &&
			(current.Text == "て" || current.Text == "で" || current.Text == "ちゃ" || current.Text == "ば") &&
			(prev.PartOfSpeech == postag.Verb || prev.PartOfSpeech == postag.IAdjective || prev.PartOfSpeech == postag.Auxiliary) {
			prev.Text += current.Text
			combined = true
		}
		if !combined {
			out = append(out, current)
		}
	}
	return out
}

var auxNotDisallowedDictForms = map[string]bool{"らしい": true, "べし": true, "ようだ": true, "やがる": true}

func combineAuxiliary(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	out = append(out, words[0])
	for i := 1; i < len(words); i++ {
		cur := words[i]
		prev := &out[len(out)-1]
		if cur.PartOfSpeech != postag.Auxiliary {
			out = append(out, cur)
			continue
		}
		prevConjugatable := prev.PartOfSpeech == postag.Verb || prev.PartOfSpeech == postag.IAdjective ||
			prev.PartOfSpeech == postag.NaAdjective || prev.PartOfSpeech == postag.Auxiliary ||
			prev.HasSection(postag.Adjectival)
		curNotNaOrNi := cur.Text != "な" && cur.Text != "に"
		desuSequenceAllowed := cur.DictionaryForm != "です" ||
			(prev.PartOfSpeech == postag.Verb && cur.DictionaryForm == "です" && (cur.Text == "でし" || cur.Text == "でした"))
		curNotAuxForm := !auxNotDisallowedDictForms[cur.DictionaryForm]
		curNotDisallowed := cur.Text != "なら" && cur.Text != "だろう"
		if prevConjugatable && curNotNaOrNi && desuSequenceAllowed && curNotAuxForm && curNotDisallowed {
			prev.Text += cur.Text
		} else {
			out = append(out, cur)
		}
	}
	return out
}

var auxVerbStemExcluded = map[string]bool{"ように": true, "よう": true, "みたい": true}

func combineAuxiliaryVerbStem(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if nxt.HasSection(postag.AuxiliaryVerbStem) && !auxVerbStemExcluded[nxt.Text] &&
			(words[i-1].PartOfSpeech == postag.Verb || words[i-1].PartOfSpeech == postag.IAdjective) {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

var suffixFusibleDictForms = map[string]bool{"っこ": true, "さ": true, "がる": true}

func combineSuffix(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if (nxt.PartOfSpeech == postag.Suffix || nxt.HasSection(postag.SuffixSection)) &&
			(suffixFusibleDictForms[nxt.DictionaryForm] ||
				(nxt.DictionaryForm == "ら" && words[i-1].PartOfSpeech == postag.Pronoun)) {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

func combineParticles(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	i := 0
	for i < len(words) {
		cur := words[i]
		if i+1 < len(words) {
			nxt := words[i+1]
			combined := ""
			switch {
			case cur.Text == "に" && nxt.Text == "は":
				combined = "には"
			case cur.Text == "と" && nxt.Text == "は":
				combined = "とは"
			case cur.Text == "で" && nxt.Text == "は":
				combined = "では"
			case cur.Text == "の" && nxt.Text == "に":
				combined = "のに"
			}
			if combined != "" {
				nw := cur
				nw.Text = combined
				out = append(out, nw)
				i += 2
				continue
			}
		}
		out = append(out, cur)
		i++
	}
	return out
}

func combineFinal(words []morph.Morpheme) []morph.Morpheme {
	if len(words) < minPairLength {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	current := words[0]
	for i := 1; i < len(words); i++ {
		nxt := words[i]
		if nxt.Text == "ば" && words[i-1].PartOfSpeech == postag.Verb {
			current.Text += nxt.Text
		} else {
			out = append(out, current)
			current = nxt
		}
	}
	out = append(out, current)
	return out
}

var honorificsSuffixes = []string{"さん", "ちゃん", "くん"}

func separateSuffixHonorifics(words []morph.Morpheme) []morph.Morpheme {
	if len(words) == 0 {
		return words
	}
	out := make([]morph.Morpheme, 0, len(words))
	for _, w := range words {
		current := w
		separated := false
		for _, h := range honorificsSuffixes {
			if strings.HasSuffix(current.Text, h) && len(current.Text) > len(h) &&
				(current.HasSection(postag.PersonName) || current.HasSection(postag.ProperNoun)) {
				current.Text = strings.TrimSuffix(current.Text, h)
				current.DictionaryForm = strings.TrimSuffix(current.DictionaryForm, h)
				suffix := morph.Morpheme{Text: h, PartOfSpeech: postag.Suffix, Reading: h, DictionaryForm: h}
				out = append(out, current, suffix)
				separated = true
				break
			}
		}
		if !separated {
			out = append(out, current)
		}
	}
	return out
}

var filterDeletionSet = map[string]bool{
	"そ": true, "ー": true, "る": true, "ま": true, "ふ": true,
	"ち": true, "ほ": true, "す": true, "じ": true, "なさ": true,
}

func filterMisparse(words []morph.Morpheme) []morph.Morpheme {
	res := make([]morph.Morpheme, 0, len(words))
	for _, w := range words {
		ww := w
		switch ww.Text {
		case "なん", "フン", "ふん":
			ww.PartOfSpeech = postag.Prefix
		}
		if ww.Text == "そう" {
			ww.PartOfSpeech = postag.Adverb
		}
		if ww.Text == "おい" {
			ww.PartOfSpeech = postag.Interjection
		}
		if ww.Text == "つ" && ww.PartOfSpeech == postag.Suffix {
			ww.PartOfSpeech = postag.Counter
		}
		runes := []rune(ww.Text)
		isLooseKana := (len(runes) == 1 && isKanaString(ww.Text)) ||
			(len(runes) == doubleCharLen && isKanaString(string(runes[0])) && runes[1] == 'ー') ||
			ww.Text == "エナ" || ww.Text == "えな"
		if filterDeletionSet[ww.Text] || (ww.PartOfSpeech == postag.Noun && isLooseKana) {
			continue
		}
		res = append(res, ww)
	}
	return res
}

func isKanaString(s string) bool {
	for _, ch := range s {
		if !((ch >= 0x3040 && ch <= 0x30FF) || (ch >= 0xFF66 && ch <= 0xFF9D)) {
			return false
		}
	}
	return true
}
