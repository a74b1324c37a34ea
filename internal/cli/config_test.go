package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFetcherConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	folkets := FetcherConfig("folkets")
	if folkets.UserAgent != "" {
		t.Errorf("folkets must not send a User-Agent, got %q", folkets.UserAgent)
	}
	if folkets.Timeout != 0 {
		t.Errorf("Expected no timeout by default, got %v", folkets.Timeout)
	}
	if folkets.BreakerThreshold != 0 {
		t.Errorf("Expected the breaker disabled by default, got %d", folkets.BreakerThreshold)
	}
	if folkets.BreakerCooldown != time.Minute {
		t.Errorf("BreakerCooldown = %v, want 1m", folkets.BreakerCooldown)
	}

	svenska := FetcherConfig("svenska")
	if svenska.UserAgent != "curl/7.77.0" {
		t.Errorf("svenska User-Agent = %q", svenska.UserAgent)
	}

	viper.Set(KeyHTTPTimeout, "10s")
	viper.Set(KeySvenskaUserAgent, "lexikort-test")
	if got := FetcherConfig("svenska"); got.Timeout != 10*time.Second || got.UserAgent != "lexikort-test" {
		t.Errorf("overrides not applied: %+v", got)
	}
}

func TestSvenskaConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	cfg := SvenskaConfig()
	if cfg.BaseURL != "https://svenska.se/so/" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.AudioServiceURL != "https://isolve-so-service.appspot.com/pronounce" {
		t.Errorf("AudioServiceURL = %s", cfg.AudioServiceURL)
	}
}

func TestAbbreviations(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set(KeyAbbreviations, map[string]string{"Förk": "förkortning"})
	abbr := Abbreviations()

	if got := abbr.Canonical("förk"); got != "förkortning" {
		t.Errorf("Canonical(förk) = %s", got)
	}
	if got := abbr.Canonical("subst."); got != "substantiv" {
		t.Errorf("built-in entry lost: Canonical(subst.) = %s", got)
	}
}

func TestLogOptions(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	flags := NewFlags()
	if got := LogOptions(flags); got.Level != "info" || got.Format != "text" {
		t.Errorf("LogOptions() = %+v", got)
	}

	viper.Set(KeyLogLevel, "debug")
	if got := LogOptions(flags); got.Level != "debug" {
		t.Errorf("config level not applied: %+v", got)
	}
}

func TestExportSettings(t *testing.T) {
	tests := []struct {
		name           string
		config         map[string]interface{}
		env            map[string]string
		flagSkipAudio  bool
		wantSkipAudio  bool
		wantDeckPrefix string
	}{
		{
			name:           "flag defaults",
			wantDeckPrefix: "Svenska",
		},
		{
			name:           "flag values without config",
			flagSkipAudio:  true,
			wantSkipAudio:  true,
			wantDeckPrefix: "Svenska",
		},
		{
			name:           "config file keys",
			config:         map[string]interface{}{KeySkipAudio: true, KeyDeckPrefix: "Ord"},
			wantSkipAudio:  true,
			wantDeckPrefix: "Ord",
		},
		{
			name:           "environment",
			env:            map[string]string{"LEXIKORT_EXPORT_SKIP_AUDIO": "true", "LEXIKORT_EXPORT_DECK_PREFIX": "Env"},
			wantSkipAudio:  true,
			wantDeckPrefix: "Env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			viper.SetEnvPrefix("LEXIKORT")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()
			for k, v := range tt.config {
				viper.Set(k, v)
			}

			flags := NewFlags()
			flags.SkipAudio = tt.flagSkipAudio

			if got := SkipAudio(flags); got != tt.wantSkipAudio {
				t.Errorf("SkipAudio() = %v, want %v", got, tt.wantSkipAudio)
			}
			if got := DeckPrefix(flags); got != tt.wantDeckPrefix {
				t.Errorf("DeckPrefix() = %q, want %q", got, tt.wantDeckPrefix)
			}
		})
	}
}
