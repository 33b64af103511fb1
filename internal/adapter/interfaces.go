// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used to reach the diff server.
//
// The abstraction is [Transport], which performs exactly one HTTP-style
// exchange. Two implementations exist and exactly one is compiled into any
// binary:
//
//   - transport_native.go (every target except js/wasm) drives the exchange
//     through a caller-supplied pooled resty client;
//   - transport_fetch.go (js/wasm) drives it through the browser Fetch API
//     and needs no client object.
//
// Both are constructed with [NewTransport], so callers never choose between
// them at runtime. Network failures of any kind are reported as
// [*FetchError]; a missing native client is reported as [ErrNoHTTPClient].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-diff-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport performs a single request/response exchange with a remote HTTP
// endpoint. Method, URL, headers and body of the request are sent unchanged.
//
// Implementations must be safe for concurrent use by independent pulls and
// must not retry.
type Transport interface {
	// Perform sends req and returns the status code and body of the response.
	// Any non-HTTP failure (DNS, timeout, reset, host error) is returned as a
	// [*FetchError]. Non-2xx statuses are not errors at this layer.
	Perform(ctx context.Context, req models.RequestEnvelope) (models.ResponseEnvelope, error)
}
