package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
)

// downloadAudio streams rawURL into outputPath. It reports false without
// an error when the recording could not be fetched; only local file
// system failures are returned.
func (e *Exporter) downloadAudio(ctx context.Context, rawURL, outputPath string) (bool, error) {
	reader, err := e.audio.Open(ctx, rawURL)
	if err != nil {
		e.audioFailed(ctx, rawURL, err)
		return false, nil
	}
	defer reader.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return false, fmt.Errorf("failed to create audio file: %w", err)
	}

	_, copyErr := io.Copy(file, reader)
	closeErr := file.Close()

	if copyErr != nil || closeErr != nil {
		os.Remove(outputPath) // Clean up the partial file
		if closeErr != nil {
			return false, fmt.Errorf("failed to write audio file: %w", closeErr)
		}
		e.audioFailed(ctx, rawURL, &lexicon.FetchError{Source: "audio", URL: rawURL, Err: copyErr})
		return false, nil
	}

	e.stats.AudioFiles++
	return true, nil
}

func (e *Exporter) audioFailed(ctx context.Context, rawURL string, err error) {
	e.stats.AudioFailures++
	e.log.WarnContext(ctx, "audio download failed",
		slog.String("url", rawURL),
		logging.Error(err))
}
