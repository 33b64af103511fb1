// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client side of the pull protocol.
//
// [PullService] performs one pull exchange with the diff server and
// [SyncService] is the externally callable begin-sync operation built on top
// of it. Both are stateless between calls: every call builds its own request,
// envelope and response values.
package service

import (
	"context"

	"github.com/MKhiriev/go-diff-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// StateProvider reports the state a local replica is in. It is implemented
// by the store registry.
type StateProvider interface {
	CurrentStateDescriptor(ctx context.Context, dbName string) (models.StateDescriptor, error)
}

// IDGenerator produces sync identifiers, one per pull.
type IDGenerator interface {
	Generate() string
}

// PullService negotiates a new state with the diff server.
type PullService interface {
	// Pull sends the replica's current state descriptor to the diff server
	// and returns the server's authoritative state. See errors.go for the
	// failure modes.
	Pull(ctx context.Context, session models.SyncSession) (models.PullResponse, error)
}

// SyncService is the begin-sync entry point.
type SyncService interface {
	// BeginSync performs exactly one pull. Any pull failure is returned
	// wrapped in [ErrPullFailed].
	BeginSync(ctx context.Context, session models.SyncSession) (models.BeginSyncResponse, error)
}
