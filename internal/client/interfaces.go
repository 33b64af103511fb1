// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-diff-sync/internal/gateway"
)

// Client defines the lifecycle contract of a runnable sync client.
type Client interface {
	gateway.Dispatcher

	// RunSync runs the periodic begin-sync worker and blocks until ctx is
	// cancelled.
	RunSync(ctx context.Context) error

	// Close releases every open replica.
	Close() error
}

var _ Client = (*App)(nil)
