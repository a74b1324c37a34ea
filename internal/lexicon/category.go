package lexicon

import (
	"maps"
	"strings"
)

// Abbreviations maps part-of-speech shorthand to the full Swedish word
// class name. Keys are lower case.
type Abbreviations map[string]string

var defaultAbbreviations = Abbreviations{
	// Shorthand printed by the dictionaries
	"subst.":  "substantiv",
	"s.":      "substantiv",
	"adj.":    "adjektiv",
	"adv.":    "adverb",
	"verb.":   "verb",
	"v.":      "verb",
	"prep.":   "preposition",
	"konj.":   "konjunktion",
	"subj.":   "subjunktion",
	"interj.": "interjektion",
	"pron.":   "pronomen",
	"räkn.":   "räkneord",
	"förk.":   "förkortning",
	"abbrev.": "förkortning",
	"artikel": "artikel",
	"part.":   "partikel",
	"prefix.": "prefix",
	"suffix.": "suffix",

	// Part-of-speech tags used by Folkets lexikon data
	"nn": "substantiv",
	"vb": "verb",
	"jj": "adjektiv",
	"ab": "adverb",
	"pp": "preposition",
	"pn": "pronomen",
	"kn": "konjunktion",
	"sn": "subjunktion",
	"in": "interjektion",
	"rg": "räkneord",
	"pm": "egennamn",
	"ie": "infinitivmärke",
}

// DefaultAbbreviations returns a copy of the built-in table
func DefaultAbbreviations() Abbreviations {
	return maps.Clone(defaultAbbreviations)
}

// Extend adds or overrides entries. Keys are lower-cased.
func (a Abbreviations) Extend(extra map[string]string) {
	for k, v := range extra {
		a[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
}

// Canonical returns the full form of token, or the lower-cased token
// itself when it is not an abbreviation.
func (a Abbreviations) Canonical(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if full, ok := a[t]; ok {
		return full
	}
	return t
}

// Same reports whether two category tokens name the same word class
func (a Abbreviations) Same(x, y string) bool {
	return a.Canonical(x) == a.Canonical(y)
}
