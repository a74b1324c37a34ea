package processor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/lexikort/internal/batch"
	"codeberg.org/snonux/lexikort/internal/cli"
	"codeberg.org/snonux/lexikort/internal/export"
	"codeberg.org/snonux/lexikort/internal/folkets"
	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/svenska"
	"codeberg.org/snonux/lexikort/internal/testutil"
)

func TestResolve_LaterSourceWins(t *testing.T) {
	a := &testutil.MockSource{SourceName: "a", Entries: map[string]lexicon.Entry{
		"ord": {Swedish: "a", English: "e1"},
	}}
	b := &testutil.MockSource{SourceName: "b", Entries: map[string]lexicon.Entry{
		"ord": {Swedish: "b"},
	}}
	p := NewProcessor(cli.NewFlags(), []lexicon.Source{a, b}, nil, nil)

	got := p.Resolve(context.Background(), batch.ParseQuery("ord"))
	assert.Equal(t, lexicon.Entry{Swedish: "b", English: "e1"}, got)
	assert.Equal(t, []string{"ord"}, a.Calls)
	assert.Equal(t, []string{"ord"}, b.Calls)
}

func TestResolve_FailingSourceContributesNothing(t *testing.T) {
	a := &testutil.MockSource{SourceName: "a", Errors: map[string]error{
		"ord": &lexicon.FetchError{Source: "a", Err: errors.New("connection refused")},
	}}
	b := &testutil.MockSource{SourceName: "b", Entries: map[string]lexicon.Entry{
		"ord": {Swedish: "ord", Definition: "d"},
	}}
	p := NewProcessor(cli.NewFlags(), []lexicon.Source{a, b}, nil, nil)

	table := p.Run(context.Background(), []batch.Query{batch.ParseQuery("ord")})
	require.Len(t, table, 1)
	assert.Equal(t, lexicon.Entry{Swedish: "ord", Definition: "d"}, table[0].Entry)
	assert.Equal(t, 1, p.Stats().FetchErrors)
}

func TestRun_KeepsInputOrder(t *testing.T) {
	src := &testutil.MockSource{SourceName: "a", Entries: map[string]lexicon.Entry{
		"hus": {Swedish: "hus", Category: "subst."},
	}}
	p := NewProcessor(cli.NewFlags(), []lexicon.Source{src}, nil, nil)

	queries := []batch.Query{
		batch.ParseQuery("xyz"),
		batch.ParseQuery("hus (building) | subst."),
		batch.ParseQuery("xyz"),
	}
	table := p.Run(context.Background(), queries)

	require.Len(t, table, 3)
	assert.Equal(t, "xyz", table[0].Index)
	assert.Equal(t, "hus (building)", table[1].Index)
	assert.Equal(t, "hus", table[1].Entry.Swedish)
	assert.True(t, table[2].Entry.IsEmpty())
	assert.Equal(t, []string{"xyz", "hus", "xyz"}, src.Calls)

	stats := p.Stats()
	assert.Equal(t, 3, stats.Queries)
	assert.Equal(t, 2, stats.NotFound)
	assert.Zero(t, stats.FetchErrors)
}

func TestLookupLine(t *testing.T) {
	src := &testutil.MockSource{SourceName: "a", Entries: map[string]lexicon.Entry{
		"ordet": {Swedish: "ordet"},
	}}
	p := NewProcessor(cli.NewFlags(), []lexicon.Source{src}, nil, nil)

	rec := p.LookupLine(context.Background(), "ordet (extra) | subst.")
	assert.Equal(t, "ordet (extra)", rec.Index)
	assert.Equal(t, "ordet", rec.Entry.Swedish)
}

// newPipeline wires the real sources against fixture pages
func newPipeline(t *testing.T, flags *cli.Flags) *Processor {
	t.Helper()

	audioFile := filepath.Join(t.TempDir(), "igang.mp3")
	testutil.CreateTestFile(t, audioFile, []byte("ID3 igång"))

	srv := testutil.NewFixtureServer(t, map[string]string{
		"/folkets/service": "../folkets/testdata/igang.html",
		"/so/?sok=igång":   "../svenska/testdata/search_igang.html",
		"/so/?id=19825":    "../svenska/testdata/article_19825.html",
		"/so/?id=19830":    "../svenska/testdata/article_19830.html",
		"/so/":             "../svenska/testdata/empty.html",
		"/pronounce":       audioFile,
	})

	abbr := lexicon.DefaultAbbreviations()
	folketsFetcher := lexicon.NewFetcher(lexicon.FetcherConfig{Source: folkets.Name}, srv.Client(), nil)
	svenskaFetcher := lexicon.NewFetcher(lexicon.FetcherConfig{
		Source:    svenska.Name,
		UserAgent: svenska.DefaultUserAgent,
	}, srv.Client(), nil)

	sources := []lexicon.Source{
		folkets.NewSource(srv.URL+"/folkets/service", folketsFetcher, abbr, nil),
		svenska.NewSource(svenska.Config{
			BaseURL:         srv.URL + "/so/",
			AudioServiceURL: srv.URL + "/pronounce",
		}, svenskaFetcher, abbr, nil),
	}
	audio := lexicon.NewFetcher(lexicon.FetcherConfig{Source: "audio"}, srv.Client(), nil)

	return NewProcessor(flags, sources, audio, nil)
}

func TestPipeline_Igang(t *testing.T) {
	p := newPipeline(t, cli.NewFlags())

	rec := p.LookupLine(context.Background(), "igång")

	assert.Equal(t, "igång", rec.Entry.Swedish)
	assert.Equal(t, "adverb", rec.Entry.Category, "the category comes from svenska")
	assert.Equal(t, "going, started", rec.Entry.English, "English only exists in folkets")
	assert.Equal(t, "[ij'ång]", rec.Entry.Pronunciation)
	assert.NotEmpty(t, rec.Entry.Definition)
	assert.True(t, strings.Contains(rec.Entry.Audio, "/pronounce?id=lex_igang_1.mp3"), rec.Entry.Audio)
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	flags := cli.NewFlags()
	flags.InputFile = testutil.CreateQueryFile(t, dir, "igång", "qwxz | verb")
	flags.OutputDir = filepath.Join(dir, "export")

	p := newPipeline(t, flags)

	output := testutil.CaptureStdout(t, func() {
		require.NoError(t, p.ProcessBatch(context.Background()))
	})
	assert.Contains(t, output, "Processing 1/2: igång")
	assert.Contains(t, output, "Total queries: 2")

	adverb := filepath.Join(flags.OutputDir, "adverb")
	testutil.AssertFileContent(t, filepath.Join(adverb, export.IndexFile), []byte("igång\n"))
	testutil.AssertFileContent(t, filepath.Join(adverb, "igång.mp3"), []byte("ID3 igång"))

	rows := testutil.ReadCSV(t, filepath.Join(adverb, export.ImportFile))
	require.Len(t, rows, 2)
	assert.Equal(t, export.ImportColumns, rows[0])
	assert.Equal(t, "igång", rows[1][0])

	// Nothing found for the second query
	rows = testutil.ReadCSV(t, filepath.Join(flags.OutputDir, export.UnknownCategory, export.ImportFile))
	assert.Equal(t, [][]string{export.ImportColumns, {"", "", "", export.UnknownCategory, ""}}, rows)
	testutil.AssertFileContent(t, filepath.Join(flags.OutputDir, export.UnknownCategory, export.IndexFile), []byte("qwxz\n"))
}

func TestProcessBatch_SkipAudioFromConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set(cli.KeySkipAudio, true)

	dir := t.TempDir()
	flags := cli.NewFlags()
	flags.InputFile = testutil.CreateQueryFile(t, dir, "igång")
	flags.OutputDir = filepath.Join(dir, "export")

	p := newPipeline(t, flags)
	testutil.CaptureStdout(t, func() {
		require.NoError(t, p.ProcessBatch(context.Background()))
	})

	adverb := filepath.Join(flags.OutputDir, "adverb")
	testutil.AssertFileExists(t, filepath.Join(adverb, export.ImportFile))
	testutil.AssertFileNotExists(t, filepath.Join(adverb, "igång.mp3"))
}

func TestProcessBatch_MissingInput(t *testing.T) {
	flags := cli.NewFlags()
	flags.InputFile = filepath.Join(t.TempDir(), "missing.csv")
	flags.OutputDir = t.TempDir()

	p := NewProcessor(flags, nil, nil, nil)
	assert.Error(t, p.ProcessBatch(context.Background()))
}
