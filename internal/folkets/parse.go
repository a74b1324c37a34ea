package folkets

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

const (
	swedishMarker  = "(Svenska)"
	englishMarker  = "(Engelska)"
	audioLinkTitle = "Ladda ner uttalet"
)

var (
	paragraphSelector = cascadia.MustCompile("p")
	imageSelector     = cascadia.MustCompile("img")

	pronunciationPattern = regexp.MustCompile(`Uttal:\s*(\[.*?\])`)
)

type field int

const (
	noField field = iota
	swedishField
	englishField
)

// parseCandidates returns one entry per Swedish headed paragraph, in page order
func parseCandidates(doc *html.Node, baseURL string) []lexicon.Entry {
	var entries []lexicon.Entry
	for _, p := range cascadia.QueryAll(doc, paragraphSelector) {
		if !isSwedishHeaded(p) {
			continue
		}
		entries = append(entries, parseParagraph(p, baseURL))
	}
	return entries
}

// isSwedishHeaded checks the first marker image of a paragraph
func isSwedishHeaded(p *html.Node) bool {
	img := cascadia.Query(p, imageSelector)
	return img != nil && dom.GetAttribute(img, "alt") == swedishMarker
}

// parseParagraph walks the paragraph children, tracking which language
// block the bold text belongs to. A line break ends the block.
func parseParagraph(p *html.Node, baseURL string) lexicon.Entry {
	var entry lexicon.Entry
	key := noField

	for _, node := range dom.ChildNodes(p) {
		if node.Type == html.ElementNode {
			switch dom.TagName(node) {
			case "a":
				if dom.GetAttribute(node, "title") == audioLinkTitle {
					entry.Audio = resolve(baseURL, dom.GetAttribute(node, "href"))
					continue
				}
			case "b":
				if key != noField {
					appendBold(&entry, key, dom.TextContent(node))
					continue
				}
			case "br":
				key = noField
				continue
			case "img":
				switch dom.GetAttribute(node, "alt") {
				case swedishMarker:
					key = swedishField
					continue
				case englishMarker:
					key = englishField
					continue
				}
			}
		}

		text := nodeText(node)
		switch key {
		case swedishField:
			if entry.Category == "" {
				entry.Category = leadingCategory(text)
			}
		case noField:
			if m := pronunciationPattern.FindStringSubmatch(text); m != nil {
				entry.Pronunciation = m[1]
			}
		}
	}

	return entry
}

func appendBold(entry *lexicon.Entry, key field, text string) {
	value := strings.TrimSpace(strings.ReplaceAll(text, "|", ""))
	if value == "" {
		return
	}

	target := &entry.Swedish
	if key == englishField {
		target = &entry.English
	}
	if *target == "" {
		*target = value
	} else {
		*target += ", " + value
	}
}

// leadingCategory returns the first word of text, the part-of-speech
// token printed right after the headword
func leadingCategory(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[0], ",")
}

func nodeText(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	return dom.TextContent(node)
}

func resolve(baseURL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
