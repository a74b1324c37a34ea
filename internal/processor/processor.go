package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"codeberg.org/snonux/lexikort/internal/batch"
	"codeberg.org/snonux/lexikort/internal/cli"
	"codeberg.org/snonux/lexikort/internal/export"
	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
)

// Stats counts the outcome of a run
type Stats struct {
	Queries        int
	WithDefinition int
	WithAudio      int
	NotFound       int // no source produced anything
	FetchErrors    int
}

// Processor resolves queries against the sources and exports the result
type Processor struct {
	flags   *cli.Flags
	sources []lexicon.Source // Later sources win on conflicts
	audio   export.AudioOpener
	log     *slog.Logger
	stats   Stats
}

// NewProcessor creates a processor. Sources are consulted in order and
// merged so that a later source overrides an earlier one.
func NewProcessor(flags *cli.Flags, sources []lexicon.Source, audio export.AudioOpener, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		flags:   flags,
		sources: sources,
		audio:   audio,
		log:     logger,
	}
}

// Stats returns the counters of the last run
func (p *Processor) Stats() Stats {
	return p.stats
}

// ProcessBatch reads the query file, resolves every query and writes the
// export bundle. Only an unreadable input or an unwritable output fails.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	queries, err := batch.ReadQueryFile(p.flags.InputFile)
	if err != nil {
		return err
	}

	// Create output directory (including parent directories)
	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	table := p.Run(ctx, queries)
	groups := export.GroupByCategory(table)

	exporter := export.NewExporter(&export.Options{
		OutputDir:  p.flags.OutputDir,
		SkipAudio:  cli.SkipAudio(p.flags),
		APKG:       p.flags.APKG,
		DeckPrefix: cli.DeckPrefix(p.flags),
	}, p.audio, p.log)

	fmt.Printf("\nWriting %d categories to %s\n", len(groups), p.flags.OutputDir)
	if err := exporter.Export(ctx, groups); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	p.printSummary(exporter.Stats())
	return nil
}

// Run resolves the queries one at a time, in input order
func (p *Processor) Run(ctx context.Context, queries []batch.Query) lexicon.ResultTable {
	p.stats = Stats{}
	table := make(lexicon.ResultTable, 0, len(queries))

	for i, q := range queries {
		fmt.Printf("Processing %d/%d: %s\n", i+1, len(queries), q.Index)

		record := lexicon.Record{Index: q.Index, Entry: p.Resolve(ctx, q)}
		p.count(record.Entry)
		p.logRecord(ctx, record)

		table = append(table, record)
	}

	return table
}

// LookupLine resolves a single raw query line
func (p *Processor) LookupLine(ctx context.Context, line string) lexicon.Record {
	q := batch.ParseQuery(line)
	return lexicon.Record{Index: q.Index, Entry: p.Resolve(ctx, q)}
}

// Resolve queries every source and merges the entries. A failing source
// contributes an empty entry.
func (p *Processor) Resolve(ctx context.Context, q batch.Query) lexicon.Entry {
	var merged lexicon.Entry

	for _, src := range p.sources {
		entry, err := src.Lookup(ctx, q.Word, q.Category)
		switch {
		case err == nil:
		case errors.Is(err, lexicon.ErrNoMatch):
			p.log.DebugContext(ctx, "no match",
				logging.Source(src.Name()),
				slog.String("word", q.Word),
				slog.String("category", q.Category))
			entry = lexicon.Entry{}
		default:
			p.stats.FetchErrors++
			p.log.WarnContext(ctx, "lookup failed",
				logging.Source(src.Name()),
				slog.String("word", q.Word),
				logging.Error(err))
			entry = lexicon.Entry{}
		}

		merged = lexicon.Merge(merged, entry)
	}

	return merged
}

func (p *Processor) count(entry lexicon.Entry) {
	p.stats.Queries++
	if entry.Definition != "" {
		p.stats.WithDefinition++
	}
	if entry.Audio != "" {
		p.stats.WithAudio++
	}
	if entry.IsEmpty() {
		p.stats.NotFound++
	}
}

func (p *Processor) logRecord(ctx context.Context, record lexicon.Record) {
	if !p.log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		p.log.WarnContext(ctx, "cannot encode record", logging.Error(err))
		return
	}
	p.log.DebugContext(ctx, "merged record", slog.String("record", string(data)))
}

func (p *Processor) printSummary(es export.Stats) {
	fmt.Printf("\n=== Lookup Summary ===\n")
	fmt.Printf("Total queries: %d\n", p.stats.Queries)
	fmt.Printf("With definition: %d\n", p.stats.WithDefinition)
	fmt.Printf("With audio: %d\n", p.stats.WithAudio)
	if p.stats.NotFound > 0 {
		fmt.Printf("Not found: %d\n", p.stats.NotFound)
	}
	if p.stats.FetchErrors > 0 {
		fmt.Printf("Fetch errors: %d\n", p.stats.FetchErrors)
	}
	fmt.Printf("Categories: %d\n", es.Groups)
	fmt.Printf("Audio files: %d\n", es.AudioFiles)
	if es.AudioFailures > 0 {
		fmt.Printf("Audio failures: %d\n", es.AudioFailures)
	}
	if es.Decks > 0 {
		fmt.Printf("Anki decks: %d\n", es.Decks)
	}
	fmt.Printf("======================\n")
}
