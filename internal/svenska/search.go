package svenska

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

var linkSelector = cascadia.MustCompile("a[href]")

// findResultID scans the result links of a search page and returns the
// article id of the first link whose text names word and, when given,
// category.
func findResultID(doc *html.Node, word, category string, abbr lexicon.Abbreviations) (string, bool) {
	wanted := tokenize(word)
	if len(wanted) == 0 {
		return "", false
	}
	wantedCategory := abbr.Canonical(category)

	for _, link := range cascadia.QueryAll(doc, linkSelector) {
		id := articleID(dom.GetAttribute(link, "href"))
		if id == "" {
			continue
		}

		tokens := tokenize(dom.TextContent(link))
		if !containsSequence(tokens, wanted) {
			continue
		}
		if category != "" && !containsCategory(tokens, wantedCategory, abbr) {
			continue
		}
		return id, true
	}

	return "", false
}

// tokenize splits link text into words on whitespace and on punctuation
// other than '.' and '-', so "subst." and "e-post" stay whole. Leading
// homograph numbers are stripped from each token.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(norm.NFC.String(text), func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '.' && r != '-')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimLeftFunc(f, unicode.IsNumber)
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// articleID extracts the id parameter of a result link
func articleID(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("id")
}

// containsCategory reports whether a token names the canonical category
// want. Headword tokens are never expanded, so "in" stays a word.
func containsCategory(tokens []string, want string, abbr lexicon.Abbreviations) bool {
	for _, t := range tokens {
		if abbr.Canonical(t) == want {
			return true
		}
	}
	return false
}

// containsSequence reports whether want appears as consecutive tokens
func containsSequence(tokens, want []string) bool {
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j := range want {
			if tokens[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
