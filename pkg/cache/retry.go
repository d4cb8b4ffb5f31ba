package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the annotation clients and cache backends.
var (
	// ErrNotFound means the upstream service has no data for the protein
	// (a 404); clients usually degrade this to an empty record set.
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers transport failures and 5xx responses from the
	// annotation services.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient. The annotation APIs throttle
// and flake under load, so clients wrap timeouts and 5xx responses with
// Retryable; everything else (bad accession, 404) fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps an error as transient. A nil error stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// maxFetchAttempts bounds how often one upstream fetch is retried.
const maxFetchAttempts = 3

// RetryWithBackoff runs fn until it succeeds, fails permanently, or the
// attempt budget is spent. Transient failures back off 1s, 2s before the
// final attempt; the context cancels the wait between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	backoff := time.Second
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == maxFetchAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
