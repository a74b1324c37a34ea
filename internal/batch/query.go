package batch

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Query is one lookup request derived from one input line
type Query struct {
	Index    string // Display key, may carry parenthetical qualifiers
	Word     string // Bare lookup term
	Category string // Optional category filter, empty when absent
}

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// ParseQuery normalizes a raw input line. It never fails:
// - "igång" gives Index and Word "igång" and no category
// - "ordet (extra) | subst." gives Index "ordet (extra)", Word "ordet", Category "subst."
func ParseQuery(line string) Query {
	index, category, _ := strings.Cut(line, "|")

	q := Query{
		Index:    strings.TrimSpace(index),
		Category: strings.TrimSpace(category),
	}
	q.Word = wordFromIndex(q.Index)

	return q
}

// HasCategory reports whether the query carries a category filter
func (q Query) HasCategory() bool {
	return q.Category != ""
}

// wordFromIndex strips "(...)" groups and collapses the remaining whitespace.
// The result is NFC so decomposed å, ä and ö match the lexicon pages.
func wordFromIndex(index string) string {
	stripped := parenthetical.ReplaceAllString(index, " ")
	word := strings.Join(strings.Fields(stripped), " ")
	return norm.NFC.String(word)
}
