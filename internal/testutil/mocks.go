package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

// MockSource is a lexicon.Source answering from a fixed table
type MockSource struct {
	SourceName string
	Entries    map[string]lexicon.Entry // keyed by word
	Errors     map[string]error         // keyed by word

	mu    sync.Mutex
	Calls []string
}

// Name returns the configured source name
func (m *MockSource) Name() string {
	return m.SourceName
}

// Lookup records the call and returns the configured entry or error.
// Unknown words yield lexicon.ErrNoMatch.
func (m *MockSource) Lookup(ctx context.Context, word, category string) (lexicon.Entry, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	m.mu.Unlock()

	if err, ok := m.Errors[word]; ok {
		return lexicon.Entry{}, err
	}
	if entry, ok := m.Entries[word]; ok {
		return entry, nil
	}
	return lexicon.Entry{}, lexicon.ErrNoMatch
}

// NewFixtureServer serves files keyed by request path, optionally
// narrowed by one query parameter: "/so/?id=19825" matches that id only,
// "/folkets/service" matches any query. Unknown requests answer 404.
func NewFixtureServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, ok := matchRoute(routes, r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func matchRoute(routes map[string]string, r *http.Request) (string, bool) {
	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if file, ok := routes[r.URL.Path+"?"+k+"="+query.Get(k)]; ok {
			return file, true
		}
	}
	file, ok := routes[r.URL.Path]
	return file, ok
}
