package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHTTPClient is returned by the native transport when it was built
	// without a client. No network call is attempted.
	ErrNoHTTPClient = errors.New("no http client")

	// ErrFetch matches every [*FetchError] via errors.Is.
	ErrFetch = errors.New("fetch error")
)

// FetchError reports a network-level failure of one exchange. Cause is a
// human-readable description; subtypes of network failure are not told apart.
type FetchError struct {
	Cause string
	Err   error
}

func newFetchError(err error) *FetchError {
	return &FetchError{Cause: err.Error(), Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
