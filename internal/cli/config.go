package cli

import (
	"log/slog"

	"github.com/spf13/viper"

	"codeberg.org/snonux/lexikort/internal/folkets"
	"codeberg.org/snonux/lexikort/internal/lexicon"
	"codeberg.org/snonux/lexikort/internal/logging"
	"codeberg.org/snonux/lexikort/internal/svenska"
)

// Configuration keys
const (
	KeyFolketsURL       = "sources.folkets.url"
	KeySvenskaURL       = "sources.svenska.url"
	KeySvenskaUserAgent = "sources.svenska.user_agent"
	KeyAudioServiceURL  = "audio.service_url"
	KeyHTTPTimeout      = "http.timeout"
	KeyBreakerThreshold = "http.breaker_threshold"
	KeyBreakerCooldown  = "http.breaker_cooldown"
	KeyAbbreviations    = "lexicon.abbreviations"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyDeckPrefix       = "export.deck_prefix"
	KeySkipAudio        = "export.skip_audio"
)

func setDefaults() {
	viper.SetDefault(KeyFolketsURL, folkets.DefaultURL)
	viper.SetDefault(KeySvenskaURL, svenska.DefaultURL)
	viper.SetDefault(KeySvenskaUserAgent, svenska.DefaultUserAgent)
	viper.SetDefault(KeyAudioServiceURL, svenska.DefaultAudioServiceURL)
	viper.SetDefault(KeyHTTPTimeout, "0s")
	viper.SetDefault(KeyBreakerThreshold, 0)
	viper.SetDefault(KeyBreakerCooldown, "1m")
}

// FolketsURL returns the Folkets lexikon service endpoint
func FolketsURL() string {
	if url := viper.GetString(KeyFolketsURL); url != "" {
		return url
	}
	return folkets.DefaultURL
}

// SvenskaConfig returns the Svensk ordbok endpoints
func SvenskaConfig() svenska.Config {
	return svenska.Config{
		BaseURL:         viper.GetString(KeySvenskaURL),
		AudioServiceURL: viper.GetString(KeyAudioServiceURL),
	}
}

// FetcherConfig returns the HTTP settings for source. Only svenska sends
// a User-Agent.
func FetcherConfig(source string) lexicon.FetcherConfig {
	cfg := lexicon.FetcherConfig{
		Source:           source,
		Timeout:          viper.GetDuration(KeyHTTPTimeout),
		BreakerThreshold: viper.GetUint32(KeyBreakerThreshold),
		BreakerCooldown:  viper.GetDuration(KeyBreakerCooldown),
	}
	if source == svenska.Name {
		cfg.UserAgent = viper.GetString(KeySvenskaUserAgent)
		if cfg.UserAgent == "" {
			cfg.UserAgent = svenska.DefaultUserAgent
		}
	}
	return cfg
}

// Abbreviations returns the default category table extended with the
// configured entries
func Abbreviations() lexicon.Abbreviations {
	abbr := lexicon.DefaultAbbreviations()
	abbr.Extend(viper.GetStringMapString(KeyAbbreviations))
	return abbr
}

// LogOptions returns the logger settings, preferring explicit flags
func LogOptions(flags *Flags) logging.Options {
	opts := logging.Options{
		Level:  viper.GetString(KeyLogLevel),
		Format: viper.GetString(KeyLogFormat),
	}
	if opts.Level == "" {
		opts.Level = flags.LogLevel
	}
	if opts.Format == "" {
		opts.Format = flags.LogFormat
	}
	return opts
}

// SkipAudio reports whether recordings are skipped. An explicit flag,
// the config file or LEXIKORT_EXPORT_SKIP_AUDIO override the flag default.
func SkipAudio(flags *Flags) bool {
	if viper.IsSet(KeySkipAudio) {
		return viper.GetBool(KeySkipAudio)
	}
	return flags.SkipAudio
}

// DeckPrefix returns the parent deck name for the Anki packages
func DeckPrefix(flags *Flags) string {
	if viper.IsSet(KeyDeckPrefix) {
		return viper.GetString(KeyDeckPrefix)
	}
	return flags.DeckPrefix
}

// LogValue renders the effective configuration for a debug log line
func LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("folkets", FolketsURL()),
		slog.String("svenska", viper.GetString(KeySvenskaURL)),
		slog.Duration("timeout", viper.GetDuration(KeyHTTPTimeout)),
		slog.Uint64("breaker_threshold", uint64(viper.GetUint32(KeyBreakerThreshold))),
		slog.Int("abbreviations", len(viper.GetStringMapString(KeyAbbreviations))),
	)
}
