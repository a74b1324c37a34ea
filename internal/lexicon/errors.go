package lexicon

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned with an empty Entry when no candidate on the
// page survives disambiguation.
var ErrNoMatch = errors.New("no matching entry")

// FetchError reports a failure to reach a source: a transport error, a
// non-2xx status or an open circuit breaker.
type FetchError struct {
	Source     string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetch %s: status %d", e.Source, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: fetch %s: %v", e.Source, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err carries a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
