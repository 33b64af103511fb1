package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Pull failure kinds. Each pull error matches exactly one of these with
// errors.Is; the underlying cause stays reachable through errors.Unwrap.
var (
	// ErrNoHTTPClient: the native transport was configured without a client.
	ErrNoHTTPClient = errors.New("no http client")

	// ErrInvalidRequest: the pull envelope could not be built (bad URL or
	// header value, or unserializable body).
	ErrInvalidRequest = errors.New("invalid pull request")

	// ErrFetchFailed: the network exchange itself failed.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrFetchNotOK: the diff server answered with a status other than 200.
	// The concrete error is *FetchNotOKError.
	ErrFetchNotOK = errors.New("fetch not ok")

	// ErrInvalidResponse: the 200 body did not decode into a PullResponse.
	ErrInvalidResponse = errors.New("invalid pull response")

	// ErrLocalState: the local store could not describe its current state.
	ErrLocalState = errors.New("local state unavailable")
)

// ErrPullFailed wraps every error returned by BeginSync.
var ErrPullFailed = errors.New("pull failed")

// FetchNotOKError carries the status code of a rejected pull.
type FetchNotOKError struct {
	StatusCode int
}

func (e *FetchNotOKError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrFetchNotOK, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *FetchNotOKError) Is(target error) bool {
	return target == ErrFetchNotOK
}
