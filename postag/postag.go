// Package postag defines the closed part-of-speech enumerations shared by the
// merge pipeline, the deconjugator and the dictionary anchor, along with the
// decoders that map analyzer-native Japanese tags and dictionary-native
// English abbreviations onto them.
package postag

// POS is the primary part-of-speech classification assigned to a morpheme.
type POS int

const (
	Unknown POS = iota
	Noun
	Verb
	IAdjective
	Adverb
	Particle
	Conjunction
	Auxiliary
	Adnominal
	Interjection
	Symbol
	Prefix
	Filler
	Name
	Pronoun
	NaAdjective
	Suffix
	CommonNoun
	SupplementarySymbol
	BlankSpace
	Expression
	NominalAdjective
	Numeral
	PrenounAdjectival
	Counter
	AdverbTo
	NounSuffix
)

var posNames = map[POS]string{
	Unknown:             "Unknown",
	Noun:                "Noun",
	Verb:                "Verb",
	IAdjective:          "IAdjective",
	Adverb:              "Adverb",
	Particle:            "Particle",
	Conjunction:         "Conjunction",
	Auxiliary:           "Auxiliary",
	Adnominal:           "Adnominal",
	Interjection:        "Interjection",
	Symbol:              "Symbol",
	Prefix:              "Prefix",
	Filler:              "Filler",
	Name:                "Name",
	Pronoun:             "Pronoun",
	NaAdjective:         "NaAdjective",
	Suffix:              "Suffix",
	CommonNoun:          "CommonNoun",
	SupplementarySymbol: "SupplementarySymbol",
	BlankSpace:          "BlankSpace",
	Expression:          "Expression",
	NominalAdjective:    "NominalAdjective",
	Numeral:             "Numeral",
	PrenounAdjectival:   "PrenounAdjectival",
	Counter:             "Counter",
	AdverbTo:            "AdverbTo",
	NounSuffix:          "NounSuffix",
}

// String implements fmt.Stringer for debug output and log fields.
func (p POS) String() string {
	if s, ok := posNames[p]; ok {
		return s
	}
	return "Unknown"
}

// POSSection is the closed enumeration of the analyzer's second-through-
// fourth sub-classification slots (pos1/pos2/pos3 on a Morpheme).
type POSSection int

const (
	None_ POSSection = iota
	Amount
	Alphabet
	FullStop
	BlankSpaceSection
	SuffixSection
	PronounSection
	Independant
	Dependant
	FillerSection
	Common
	SentenceEndingParticle
	CounterSection
	ParallelMarker
	BindingParticle
	PotentialAdverb
	CaseMarkingParticle
	IrregularConjunction
	ConjunctionParticle
	AuxiliaryVerbStem
	AdjectivalStem
	CompoundWord
	Quotation
	NounConjunction
	AdverbialParticle
	ConjunctiveParticleClass
	Adverbialization
	AdverbialParticleOrParallelMarkerOrSentenceEndingParticle
	AdnominalAdjective
	ProperNoun
	Special
	VerbConjunction
	PersonName
	FamilyName
	Organization
	NotAdjectiveStem
	Comma
	OpeningBracket
	ClosingBracket
	Region
	Country
	NumeralSection
	PossibleDependant
	CommonNounSection
	SubstantiveAdjective
	PossibleCounterWord
	PossibleSuru
	Juntaijoushi
	PossibleNaAdjective
	VerbLike
	PossibleVerbSuruNoun
	Adjectival
	NaAdjectiveLike
	NameSection
	Letter
	PlaceName
	TaruAdjective
)

var sectionNames = map[POSSection]string{
	None_: "None", Amount: "Amount", Alphabet: "Alphabet", FullStop: "FullStop",
	BlankSpaceSection: "BlankSpaceSection", SuffixSection: "SuffixSection",
	PronounSection: "PronounSection", Independant: "Independant", Dependant: "Dependant",
	FillerSection: "FillerSection", Common: "Common", SentenceEndingParticle: "SentenceEndingParticle",
	CounterSection: "CounterSection", ParallelMarker: "ParallelMarker", BindingParticle: "BindingParticle",
	PotentialAdverb: "PotentialAdverb", CaseMarkingParticle: "CaseMarkingParticle",
	IrregularConjunction: "IrregularConjunction", ConjunctionParticle: "ConjunctionParticle",
	AuxiliaryVerbStem: "AuxiliaryVerbStem", AdjectivalStem: "AdjectivalStem", CompoundWord: "CompoundWord",
	Quotation: "Quotation", NounConjunction: "NounConjunction", AdverbialParticle: "AdverbialParticle",
	ConjunctiveParticleClass: "ConjunctiveParticleClass", Adverbialization: "Adverbialization",
	AdverbialParticleOrParallelMarkerOrSentenceEndingParticle: "AdverbialParticleOrParallelMarkerOrSentenceEndingParticle",
	AdnominalAdjective: "AdnominalAdjective", ProperNoun: "ProperNoun", Special: "Special",
	VerbConjunction: "VerbConjunction", PersonName: "PersonName", FamilyName: "FamilyName",
	Organization: "Organization", NotAdjectiveStem: "NotAdjectiveStem", Comma: "Comma",
	OpeningBracket: "OpeningBracket", ClosingBracket: "ClosingBracket", Region: "Region",
	Country: "Country", NumeralSection: "NumeralSection", PossibleDependant: "PossibleDependant",
	CommonNounSection: "CommonNounSection", SubstantiveAdjective: "SubstantiveAdjective",
	PossibleCounterWord: "PossibleCounterWord", PossibleSuru: "PossibleSuru", Juntaijoushi: "Juntaijoushi",
	PossibleNaAdjective: "PossibleNaAdjective", VerbLike: "VerbLike", PossibleVerbSuruNoun: "PossibleVerbSuruNoun",
	Adjectival: "Adjectival", NaAdjectiveLike: "NaAdjectiveLike", NameSection: "NameSection",
	Letter: "Letter", PlaceName: "PlaceName", TaruAdjective: "TaruAdjective",
}

// String implements fmt.Stringer for debug output and log fields.
func (s POSSection) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "None"
}

// DecodePOS maps an analyzer-native Japanese tag or a dictionary-native
// English abbreviation onto the closed POS enum. Decoding is pure and total:
// any string outside the table yields Unknown.
func DecodePOS(tag string) POS {
	switch tag {
	case "名詞", "n":
		return Noun
	case "動詞":
		return Verb
	case "形容詞", "adj-i", "adj-ix":
		return IAdjective
	case "形状詞", "adj-na":
		return NaAdjective
	case "副詞", "adv":
		return Adverb
	case "助詞", "prt":
		return Particle
	case "接続詞", "conj":
		return Conjunction
	case "助動詞", "aux", "aux-v":
		return Auxiliary
	case "感動詞", "int":
		return Interjection
	case "記号":
		return Symbol
	case "接頭詞", "接頭辞", "pref":
		return Prefix
	case "フィラー":
		return Filler
	case "代名詞", "pn":
		return Pronoun
	case "接尾辞", "suf":
		return Suffix
	case "普通名詞":
		return CommonNoun
	case "補助記号":
		return SupplementarySymbol
	case "空白":
		return BlankSpace
	case "表現", "exp":
		return Expression
	case "形動", "adj-no", "adj-t", "adj-f":
		return NominalAdjective
	case "連体詞", "adj-pn":
		return PrenounAdjectival
	case "数詞", "num":
		return Numeral
	case "助数詞", "ctr":
		return Counter
	case "副詞的と", "adv-to":
		return AdverbTo
	case "名詞接尾辞", "n-suf":
		return NounSuffix
	}
	if len(tag) >= 1 && tag[0] == 'v' {
		return Verb
	}
	if isNameTag(tag) {
		return Name
	}
	return Unknown
}

var nameTags = map[string]bool{
	"名": true, "company": true, "given": true, "place": true, "person": true,
	"product": true, "ship": true, "surname": true, "unclass": true,
	"name-fem": true, "name-masc": true, "station": true, "group": true,
	"char": true, "creat": true, "dei": true, "doc": true, "ev": true,
	"fem": true, "fict": true, "leg": true, "masc": true, "myth": true,
	"obj": true, "organization": true, "oth": true, "relig": true,
	"serv": true, "work": true, "unc": true,
}

func isNameTag(tag string) bool {
	return nameTags[tag]
}

// DecodeSection maps an analyzer-native Japanese tag onto the closed
// POSSection enum. Unknown strings (including the analyzer's own "*"
// placeholder) yield None_.
func DecodeSection(tag string) POSSection {
	switch tag {
	case "*":
		return None_
	case "数":
		return Amount
	case "アルファベット":
		return Alphabet
	case "句点":
		return FullStop
	case "空白":
		return BlankSpaceSection
	case "接尾", "suf":
		return SuffixSection
	case "代名詞", "pn":
		return PronounSection
	case "自立":
		return Independant
	case "フィラー":
		return FillerSection
	case "一般":
		return Common
	case "非自立":
		return Dependant
	case "終助詞":
		return SentenceEndingParticle
	case "助数詞", "ctr":
		return CounterSection
	case "並立助詞":
		return ParallelMarker
	case "係助詞":
		return BindingParticle
	case "副詞可能":
		return PotentialAdverb
	case "格助詞":
		return CaseMarkingParticle
	case "サ変接続":
		return IrregularConjunction
	case "接続助詞":
		return ConjunctionParticle
	case "助動詞語幹":
		return AuxiliaryVerbStem
	case "形容動詞語幹":
		return AdjectivalStem
	case "連語":
		return CompoundWord
	case "引用":
		return Quotation
	case "名詞接続":
		return NounConjunction
	case "副助詞":
		return AdverbialParticle
	case "助詞類接続":
		return ConjunctiveParticleClass
	case "副詞化":
		return Adverbialization
	case "副助詞／並立助詞／終助詞":
		return AdverbialParticleOrParallelMarkerOrSentenceEndingParticle
	case "連体化":
		return AdnominalAdjective
	case "固有名詞":
		return ProperNoun
	case "特殊":
		return Special
	case "動詞接続":
		return VerbConjunction
	case "人名":
		return PersonName
	case "姓":
		return FamilyName
	case "組織":
		return Organization
	case "ナイ形容詞語幹":
		return NotAdjectiveStem
	case "読点":
		return Comma
	case "括弧開":
		return OpeningBracket
	case "括弧閉":
		return ClosingBracket
	case "地域":
		return Region
	case "国":
		return Country
	case "数詞", "num":
		return NumeralSection
	case "非自立可能":
		return PossibleDependant
	case "普通名詞":
		return CommonNounSection
	case "名詞的":
		return SubstantiveAdjective
	case "助数詞可能":
		return PossibleCounterWord
	case "サ変可能":
		return PossibleSuru
	case "準体助詞":
		return Juntaijoushi
	case "形状詞可能":
		return PossibleNaAdjective
	case "動詞的":
		return VerbLike
	case "サ変形状詞可能":
		return PossibleVerbSuruNoun
	case "形容詞的":
		return Adjectival
	case "名":
		return NameSection
	case "文字":
		return Letter
	case "形状詞的":
		return NaAdjectiveLike
	case "地名":
		return PlaceName
	case "タリ":
		return TaruAdjective
	}
	return None_
}
