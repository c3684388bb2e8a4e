package morph

import (
	"testing"

	"jpsegment/postag"
)

func TestFromFields(t *testing.T) {
	m := FromFields("食べた", []string{"動詞", "自立", "*", "*"}, "食べた", "食べる", "たべた")
	if m.PartOfSpeech != postag.Verb {
		t.Errorf("PartOfSpeech = %v, want Verb", m.PartOfSpeech)
	}
	if m.Section1 != postag.Independant {
		t.Errorf("Section1 = %v, want Independant", m.Section1)
	}
	if !m.HasSection(postag.Independant) {
		t.Error("expected HasSection(Independant) true")
	}
	if m.HasSection(postag.Common) {
		t.Error("expected HasSection(Common) false")
	}
	if m.DictionaryForm != "食べる" {
		t.Errorf("DictionaryForm = %q", m.DictionaryForm)
	}
}

func TestFromFieldsShortPOS(t *testing.T) {
	m := FromFields("x", []string{"名詞"}, "x", "x", "")
	if m.PartOfSpeech != postag.Noun {
		t.Errorf("PartOfSpeech = %v, want Noun", m.PartOfSpeech)
	}
	if m.Section1 != postag.None_ {
		t.Errorf("Section1 = %v, want None_", m.Section1)
	}
}
