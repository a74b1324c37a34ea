package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/lexikort/internal"
	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
)

const (
	// IndexFile lists the query indexes of a category, one per line
	IndexFile = "_index.csv"
	// ImportFile holds the flashcard rows of a category
	ImportFile = "_import.csv"
	// AudioExtension is appended to the index to name a recording
	AudioExtension = ".mp3"
)

// ImportColumns is the fixed column order of ImportFile
var ImportColumns = []string{"Swedish", "English", "Definition", "Category", "Pronunciation"}

// AudioOpener streams a remote recording. *lexicon.Fetcher implements it.
type AudioOpener interface {
	Open(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Options configures the export
type Options struct {
	OutputDir  string // Root of the bundle, one subdirectory per category
	SkipAudio  bool   // Do not download recordings
	APKG       bool   // Also write an Anki package per category
	DeckPrefix string // Parent deck name for the Anki packages
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		OutputDir:  "export",
		DeckPrefix: "Svenska",
	}
}

// Stats summarizes what an export wrote
type Stats struct {
	Groups        int
	Rows          int
	AudioFiles    int
	AudioFailures int
	Decks         int
}

// Exporter writes the grouped records to disk
type Exporter struct {
	options *Options
	audio   AudioOpener
	log     *slog.Logger
	stats   Stats
}

// NewExporter creates an exporter. audio may be nil when SkipAudio is set.
func NewExporter(options *Options, audio AudioOpener, logger *slog.Logger) *Exporter {
	if options == nil {
		options = DefaultOptions()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{
		options: options,
		audio:   audio,
		log:     logger,
	}
}

// Export writes every group. Failing to write to the output directory
// aborts; a recording that cannot be fetched is logged and skipped.
func (e *Exporter) Export(ctx context.Context, groups []Group) error {
	for _, group := range groups {
		if err := e.exportGroup(ctx, group); err != nil {
			return fmt.Errorf("category %q: %w", group.Category, err)
		}
		e.stats.Groups++
	}
	return nil
}

// Stats returns what the exporter has written so far
func (e *Exporter) Stats() Stats {
	return e.stats
}

// CategoryDir returns the directory of a category inside the bundle
func (e *Exporter) CategoryDir(category string) string {
	return filepath.Join(e.options.OutputDir, internal.SanitizeFilename(category))
}

// AudioPath returns where the recording of a record is stored
func (e *Exporter) AudioPath(category, index string) string {
	return filepath.Join(e.CategoryDir(category), internal.SanitizeFilename(index)+AudioExtension)
}

func (e *Exporter) exportGroup(ctx context.Context, group Group) error {
	dir := e.CategoryDir(group.Category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create category directory: %w", err)
	}

	if err := writeIndex(filepath.Join(dir, IndexFile), group.Records); err != nil {
		return err
	}
	if err := writeImport(filepath.Join(dir, ImportFile), group.Records); err != nil {
		return err
	}
	e.stats.Rows += len(group.Records)

	audioFiles := make(map[string]string)
	if !e.options.SkipAudio && e.audio != nil {
		for _, rec := range group.Records {
			if rec.Entry.Audio == "" {
				continue
			}

			path := e.AudioPath(group.Category, rec.Index)
			ok, err := e.downloadAudio(ctx, rec.Entry.Audio, path)
			if err != nil {
				return err
			}
			if ok {
				audioFiles[rec.Index] = path
			}
		}
	}

	if e.options.APKG {
		deckPath := filepath.Join(dir, internal.SanitizeFilename(group.Category)+".apkg")
		deck := NewAPKGGenerator(e.deckName(group.Category))
		for _, rec := range group.Records {
			deck.AddNote(Note{Entry: rec.Entry, AudioFile: audioFiles[rec.Index]})
		}
		if err := deck.GenerateAPKG(deckPath); err != nil {
			return fmt.Errorf("failed to generate APKG: %w", err)
		}
		e.stats.Decks++
	}

	return nil
}

func (e *Exporter) deckName(category string) string {
	if e.options.DeckPrefix == "" {
		return category
	}
	return e.options.DeckPrefix + "::" + category
}

// writeIndex writes one index per line without a header
func writeIndex(path string, records []lexicon.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Index})
	}
	return writeCSV(path, nil, rows)
}

// writeImport writes the flashcard columns with a header row
func writeImport(path string, records []lexicon.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Entry.Swedish,
			rec.Entry.English,
			rec.Entry.Definition,
			rec.Entry.Category,
			rec.Entry.Pronunciation,
		})
	}
	return writeCSV(path, ImportColumns, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if header != nil {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return file.Close()
}
