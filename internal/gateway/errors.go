package gateway

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-diff-sync/internal/service"
	"github.com/MKhiriev/go-diff-sync/internal/store"
)

var (
	// ErrInvalidRPC is returned for a selector outside the operation set.
	ErrInvalidRPC = errors.New("invalid rpc")
	// ErrInvalidArgs is returned when an operation's arguments do not decode.
	ErrInvalidArgs = errors.New("invalid args")
)

// Code classifies a [HostError] for the host.
type Code string

const (
	CodeNoHTTPClient    Code = "NO_HTTP_CLIENT"
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeFetchFailed     Code = "FETCH_FAILED"
	CodeFetchNotOK      Code = "FETCH_NOT_OK"
	CodeInvalidResponse Code = "INVALID_RESPONSE"
	CodeInvalidRPC      Code = "INVALID_RPC"
	CodeInvalidArgs     Code = "INVALID_ARGS"
	CodeDatabaseNotOpen Code = "DATABASE_NOT_OPEN"
	CodeStoreError      Code = "STORE_ERROR"
	CodeInternal        Code = "INTERNAL"
)

// HostError is the only error type that leaves [Gateway.Dispatch]. It
// serializes to {"code":..,"message":..} and, for FETCH_NOT_OK, "status".
type HostError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`

	err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HostError) Unwrap() error {
	return e.err
}

// toHostError classifies err. The first matching kind wins, so store
// availability is reported before the pull failure that wraps it.
func toHostError(err error) *HostError {
	var hostErr *HostError
	if errors.As(err, &hostErr) {
		return hostErr
	}

	he := &HostError{Message: err.Error(), err: err}

	var notOK *service.FetchNotOKError
	switch {
	case errors.Is(err, ErrInvalidRPC):
		he.Code = CodeInvalidRPC
	case errors.Is(err, ErrInvalidArgs),
		errors.Is(err, store.ErrInvalidDatabaseName),
		errors.Is(err, store.ErrEmptyKey),
		errors.Is(err, store.ErrInvalidValue):
		he.Code = CodeInvalidArgs
	case errors.Is(err, store.ErrDatabaseNotOpen):
		he.Code = CodeDatabaseNotOpen
	case errors.Is(err, service.ErrNoHTTPClient):
		he.Code = CodeNoHTTPClient
	case errors.Is(err, service.ErrInvalidRequest):
		he.Code = CodeInvalidRequest
	case errors.Is(err, service.ErrFetchFailed):
		he.Code = CodeFetchFailed
	case errors.As(err, &notOK):
		he.Code = CodeFetchNotOK
		he.Status = notOK.StatusCode
	case errors.Is(err, service.ErrInvalidResponse):
		he.Code = CodeInvalidResponse
	case errors.Is(err, service.ErrLocalState),
		errors.Is(err, store.ErrStoreClosed),
		errors.Is(err, store.ErrBuildingSQLQuery),
		errors.Is(err, store.ErrExecutingQuery),
		errors.Is(err, store.ErrExecutingStatement),
		errors.Is(err, store.ErrScanningRows):
		he.Code = CodeStoreError
	default:
		he.Code = CodeInternal
	}

	return he
}
