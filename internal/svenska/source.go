package svenska

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/net/html"

	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
)

const (
	// DefaultURL is the Svensk ordbok search and article endpoint
	DefaultURL = "https://svenska.se/so/"
	// DefaultAudioServiceURL serves the pronunciation recordings
	DefaultAudioServiceURL = "https://isolve-so-service.appspot.com/pronounce"
	// DefaultUserAgent is required by svenska.se, which rejects unknown clients
	DefaultUserAgent = "curl/7.77.0"

	// Name identifies this source in logs and errors
	Name = "svenska"
)

// Config holds the endpoints of the source
type Config struct {
	BaseURL         string
	AudioServiceURL string
}

// Source implements lexicon.Source for Svensk ordbok
type Source struct {
	baseURL         string
	audioServiceURL string
	fetcher         *lexicon.Fetcher
	abbr            lexicon.Abbreviations
	log             *slog.Logger
}

// NewSource creates a Svensk ordbok source. Empty config values fall back
// to the defaults.
func NewSource(cfg Config, fetcher *lexicon.Fetcher, abbr lexicon.Abbreviations, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultURL
	}
	if cfg.AudioServiceURL == "" {
		cfg.AudioServiceURL = DefaultAudioServiceURL
	}
	if abbr == nil {
		abbr = lexicon.DefaultAbbreviations()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Source{
		baseURL:         cfg.BaseURL,
		audioServiceURL: cfg.AudioServiceURL,
		fetcher:         fetcher,
		abbr:            abbr,
		log:             logger.With(logging.Source(Name)),
	}
}

// Name returns the source name
func (s *Source) Name() string {
	return Name
}

// Lookup searches for word, follows the first matching result link and
// extracts the first lemma block of the article. Without a matching link
// the search page itself is parsed, since svenska.se shows the article
// directly when the search is unambiguous.
func (s *Source) Lookup(ctx context.Context, word, category string) (lexicon.Entry, error) {
	doc, err := s.fetcher.FetchDocument(ctx, s.baseURL, url.Values{"sok": {word}})
	if err != nil {
		return lexicon.Entry{}, err
	}

	if id, ok := findResultID(doc, word, category, s.abbr); ok {
		s.log.DebugContext(ctx, "following result link",
			slog.String("word", word),
			slog.String("id", id))

		doc, err = s.fetcher.FetchDocument(ctx, s.baseURL, url.Values{"id": {id}})
		if err != nil {
			return lexicon.Entry{}, err
		}
	}

	return s.extract(doc, category)
}

// extract reads the first lemma block and applies the category filter
func (s *Source) extract(doc *html.Node, category string) (lexicon.Entry, error) {
	entries := parseEntries(doc, s.audioServiceURL)
	if len(entries) == 0 {
		return lexicon.Entry{}, lexicon.ErrNoMatch
	}

	first := entries[0]
	if category != "" && !s.abbr.Same(first.Category, category) {
		return lexicon.Entry{}, lexicon.ErrNoMatch
	}
	return first, nil
}
