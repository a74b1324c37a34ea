package svenska

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

var (
	blockSelector       = cascadia.MustCompile("div.lemmalista")
	orthographySelector = cascadia.MustCompile("span.orto")
	wordClassSelector   = cascadia.MustCompile("div.ordklass")
	definitionSelector  = cascadia.MustCompile("span.def")
	audioSelector       = cascadia.MustCompile("a.ljudfil")

	audioCallPattern = regexp.MustCompile(`playAudioForLemma\('(.+?)'\)`)

	definitionCleaner = strings.NewReplacer("\u00ad", "", "\r", "", "\n", "")
)

// parseEntries returns one entry per lemma block, in page order
func parseEntries(doc *html.Node, audioServiceURL string) []lexicon.Entry {
	blocks := cascadia.QueryAll(doc, blockSelector)

	entries := make([]lexicon.Entry, 0, len(blocks))
	for _, block := range blocks {
		entries = append(entries, parseBlock(block, audioServiceURL))
	}
	return entries
}

func parseBlock(block *html.Node, audioServiceURL string) lexicon.Entry {
	var entry lexicon.Entry

	if n := cascadia.Query(block, orthographySelector); n != nil {
		entry.Swedish = strings.TrimSpace(strings.ReplaceAll(dom.TextContent(n), "\u00ad", ""))
	}
	if n := cascadia.Query(block, wordClassSelector); n != nil {
		entry.Category = strings.TrimSpace(dom.TextContent(n))
	}
	if n := cascadia.Query(block, definitionSelector); n != nil {
		entry.Definition = strings.TrimSpace(definitionCleaner.Replace(dom.TextContent(n)))
	}
	if n := cascadia.Query(block, audioSelector); n != nil {
		entry.Audio = audioURL(audioServiceURL, dom.GetAttribute(n, "onclick"))
	}

	return entry
}

// audioURL turns an inline playAudioForLemma('<id>') call into a direct
// link to the pronunciation service
func audioURL(serviceURL, onclick string) string {
	m := audioCallPattern.FindStringSubmatch(onclick)
	if m == nil {
		return ""
	}

	u, err := url.Parse(serviceURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("id", m[1]+".mp3")
	u.RawQuery = q.Encode()
	return u.String()
}
