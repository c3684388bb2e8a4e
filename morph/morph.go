// Package morph defines the Morpheme value produced by the analyzer and
// consumed by every later stage of the pipeline.
package morph

import "jpsegment/postag"

// Morpheme is one analyzer-produced unit of text together with its
// part-of-speech classification and canonical forms.
type Morpheme struct {
	Text           string
	PartOfSpeech   postag.POS
	Section1       postag.POSSection
	Section2       postag.POSSection
	Section3       postag.POSSection
	NormalizedForm string
	DictionaryForm string
	Reading        string
}

// HasSection reports whether s appears in any of the morpheme's three
// sub-classification slots.
func (m Morpheme) HasSection(s postag.POSSection) bool {
	return m.Section1 == s || m.Section2 == s || m.Section3 == s
}

// FromFields builds a Morpheme from already-split analyzer fields, decoding
// the four POS slots through postag.DecodePOS/DecodeSection. pos must carry
// at least one element; missing trailing slots decode to postag.None_.
func FromFields(surface string, pos []string, normalized, dictionary, reading string) Morpheme {
	m := Morpheme{
		Text:           surface,
		NormalizedForm: normalized,
		DictionaryForm: dictionary,
		Reading:        reading,
	}
	if len(pos) > 0 {
		m.PartOfSpeech = postag.DecodePOS(pos[0])
	}
	if len(pos) > 1 {
		m.Section1 = postag.DecodeSection(pos[1])
	}
	if len(pos) > 2 {
		m.Section2 = postag.DecodeSection(pos[2])
	}
	if len(pos) > 3 {
		m.Section3 = postag.DecodeSection(pos[3])
	}
	return m
}
