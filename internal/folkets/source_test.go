package folkets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

func newFixtureServer(t *testing.T, fixture string) *httptest.Server {
	t.Helper()

	body, err := os.ReadFile("testdata/" + fixture)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/folkets/service" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("word") == "" {
			t.Errorf("missing word parameter")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestSource(srv *httptest.Server) *Source {
	fetcher := lexicon.NewFetcher(lexicon.FetcherConfig{Source: Name}, srv.Client(), nil)
	return NewSource(srv.URL+"/folkets/service", fetcher, nil, nil)
}

func TestSource_Lookup(t *testing.T) {
	srv := newFixtureServer(t, "igang.html")
	src := newTestSource(srv)

	tests := []struct {
		name        string
		word        string
		category    string
		wantSwedish string
		wantErr     error
	}{
		{"closest length without category", "igång", "", "igång", nil},
		{"closest length for the longer word", "igångsättning", "", "igångsättning", nil},
		{"category filter by abbreviation", "igång", "subst.", "igångsättning", nil},
		{"category filter by full name", "igång", "substantiv", "igångsättning", nil},
		{"category without candidates", "igång", "verb", "", lexicon.ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Lookup(context.Background(), tt.word, tt.category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSwedish, got.Swedish)
		})
	}
}

func TestSource_LookupFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	got, err := newTestSource(srv).Lookup(context.Background(), "hus", "")
	require.Error(t, err)
	assert.True(t, lexicon.IsFetchError(err))
	assert.True(t, got.IsEmpty())
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "folkets", NewSource("", nil, nil, nil).Name())
}
