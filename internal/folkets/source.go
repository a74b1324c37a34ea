package folkets

import (
	"context"
	"log/slog"
	"net/url"

	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
)

// DefaultURL is the Folkets lexikon lookup service
const DefaultURL = "http://folkets-lexikon.csc.kth.se/folkets/service"

// Name identifies this source in logs and errors
const Name = "folkets"

// Source implements lexicon.Source for Folkets lexikon
type Source struct {
	baseURL string
	fetcher *lexicon.Fetcher
	abbr    lexicon.Abbreviations
	log     *slog.Logger
}

// NewSource creates a Folkets lexikon source. An empty baseURL uses DefaultURL.
func NewSource(baseURL string, fetcher *lexicon.Fetcher, abbr lexicon.Abbreviations, logger *slog.Logger) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if abbr == nil {
		abbr = lexicon.DefaultAbbreviations()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Source{
		baseURL: baseURL,
		fetcher: fetcher,
		abbr:    abbr,
		log:     logger.With(logging.Source(Name)),
	}
}

// Name returns the source name
func (s *Source) Name() string {
	return Name
}

// Lookup fetches the page for word and returns the candidate that best
// matches. It returns lexicon.ErrNoMatch with an empty Entry when the
// page has no Swedish headed candidate of the requested category.
func (s *Source) Lookup(ctx context.Context, word, category string) (lexicon.Entry, error) {
	doc, err := s.fetcher.FetchDocument(ctx, s.baseURL, url.Values{"word": {word}})
	if err != nil {
		return lexicon.Entry{}, err
	}

	candidates := parseCandidates(doc, s.baseURL)
	filtered := lexicon.FilterCategory(candidates, category, s.abbr)

	s.log.DebugContext(ctx, "candidates parsed",
		slog.String("word", word),
		slog.Int("candidates", len(candidates)),
		slog.Int("after_category", len(filtered)))

	best, ok := lexicon.Closest(filtered, word)
	if !ok {
		return lexicon.Entry{}, lexicon.ErrNoMatch
	}
	return best, nil
}
