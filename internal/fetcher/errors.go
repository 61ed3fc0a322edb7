package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches every response whose final status is an
	// error status.
	ErrRequestFailed = errors.New("request failed")

	// ErrSchemaMissing is returned by a single attempt on a URL without a
	// scheme. SendRequest handles it by retrying with "http://".
	ErrSchemaMissing = errors.New("url has no scheme")
)

// StatusError reports a response with a 4xx or 5xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrRequestFailed, e.URL, e.Status)
}

// Is reports whether target is ErrRequestFailed.
func (e *StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}
