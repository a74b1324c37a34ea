package lexicon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/net/html"

	"codeberg.org/snonux/lexikort/internal/logging"
)

// FetcherConfig configures the HTTP access to one source
type FetcherConfig struct {
	Source    string        // Name used in errors and logs
	UserAgent string        // Sent when not empty
	Timeout   time.Duration // Zero disables the client timeout

	// BreakerThreshold opens the circuit after that many consecutive
	// failures. Zero disables the breaker.
	BreakerThreshold uint32
	// BreakerCooldown is how long an open circuit rejects requests
	BreakerCooldown time.Duration
}

// Fetcher performs GET requests for one source
type Fetcher struct {
	source    string
	userAgent string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	log       *slog.Logger
}

// NewFetcher creates a fetcher. A nil client gets a fresh http.Client.
func NewFetcher(cfg FetcherConfig, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.Source(cfg.Source))

	cooldown := cfg.BreakerCooldown
	if cooldown == 0 {
		cooldown = time.Minute
	}
	threshold := cfg.BreakerThreshold

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.Source,
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Fetcher{
		source:    cfg.Source,
		userAgent: cfg.UserAgent,
		client:    client,
		breaker:   breaker,
		log:       logger,
	}
}

// Source returns the name of the source this fetcher serves
func (f *Fetcher) Source() string {
	return f.source
}

// FetchDocument GETs rawURL with params appended and parses the body as HTML
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string, params url.Values) (*html.Node, error) {
	target, err := withParams(rawURL, params)
	if err != nil {
		return nil, &FetchError{Source: f.source, URL: rawURL, Err: err}
	}

	f.log.DebugContext(ctx, "fetching page", slog.String("url", target))

	result, err := f.breaker.Execute(func() (interface{}, error) {
		resp, err := f.do(ctx, target)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		doc, err := html.Parse(resp.Body)
		if err != nil {
			return nil, &FetchError{Source: f.source, URL: target, Err: fmt.Errorf("parse html: %w", err)}
		}
		return doc, nil
	})
	if err != nil {
		return nil, f.wrap(target, err)
	}

	return result.(*html.Node), nil
}

// Open GETs rawURL and returns the response body for streaming.
// The caller must close it.
func (f *Fetcher) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	f.log.DebugContext(ctx, "opening stream", slog.String("url", rawURL))

	result, err := f.breaker.Execute(func() (interface{}, error) {
		resp, err := f.do(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	})
	if err != nil {
		return nil, f.wrap(rawURL, err)
	}

	return result.(io.ReadCloser), nil
}

// do sends the request and rejects non-2xx responses
func (f *Fetcher) do(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Source: f.source, URL: target, Err: fmt.Errorf("create request: %w", err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: f.source, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &FetchError{
			Source:     f.source,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return resp, nil
}

// wrap turns breaker rejections into FetchErrors
func (f *Fetcher) wrap(target string, err error) error {
	if IsFetchError(err) {
		return err
	}
	return &FetchError{Source: f.source, URL: target, Err: err}
}

func withParams(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
