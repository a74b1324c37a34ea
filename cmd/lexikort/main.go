package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lexikort/internal/archive"
	"codeberg.org/snonux/lexikort/internal/cli"
	"codeberg.org/snonux/lexikort/internal/folkets"
	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
	"codeberg.org/snonux/lexikort/internal/processor"
	"codeberg.org/snonux/lexikort/internal/svenska"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	lookupCmd := cli.CreateLookupCommand()
	rootCmd.AddCommand(lookupCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), flags)
	}
	lookupCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd.Context(), flags, args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runBatch(ctx context.Context, flags *cli.Flags) error {
	logger, err := logging.New(os.Stderr, cli.LogOptions(flags))
	if err != nil {
		return err
	}
	logger.Debug("configuration", slog.Any("config", cli.LogValue()))

	// Handle --archive flag
	if flags.Archive {
		archived, err := archive.ArchiveOutput(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		if archived != "" {
			fmt.Printf("Previous output archived to: %s\n", archived)
		}
	}

	proc := newProcessor(flags, logger)
	if err := proc.ProcessBatch(ctx); err != nil {
		return err
	}

	fmt.Printf("\nDone! Export saved to: %s\n", flags.OutputDir)
	return nil
}

func runLookup(ctx context.Context, flags *cli.Flags, line string) error {
	logger, err := logging.New(os.Stderr, cli.LogOptions(flags))
	if err != nil {
		return err
	}

	record := newProcessor(flags, logger).LookupLine(ctx, line)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(record)
}

// newProcessor wires both lexicons, folkets first so svenska wins on
// conflicting fields
func newProcessor(flags *cli.Flags, logger *slog.Logger) *processor.Processor {
	abbr := cli.Abbreviations()

	folketsFetcher := lexicon.NewFetcher(cli.FetcherConfig(folkets.Name), nil, logger)
	svenskaFetcher := lexicon.NewFetcher(cli.FetcherConfig(svenska.Name), nil, logger)
	audioFetcher := lexicon.NewFetcher(cli.FetcherConfig("audio"), nil, logger)

	sources := []lexicon.Source{
		folkets.NewSource(cli.FolketsURL(), folketsFetcher, abbr, logger),
		svenska.NewSource(cli.SvenskaConfig(), svenskaFetcher, abbr, logger),
	}

	return processor.NewProcessor(flags, sources, audioFetcher, logger)
}
