// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the local key-value replicas the sync client works
// against.
//
// Each replica is addressed by a database name. A [Registry] opens, closes
// and routes to replicas, and reports the state descriptor (client id, base
// state id, checksum) a pull is built from. Two backends exist: SQLite files
// for native builds and an in-memory map for js/wasm and tests.
package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-diff-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock -exclude_interfaces=IDGenerator

// LocalStore is a single replica.
type LocalStore interface {
	Has(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	// Del reports whether the key existed.
	Del(ctx context.Context, key string) (bool, error)
	// Scan returns entries whose key starts with prefix in key order.
	// A limit of zero or less means no limit.
	Scan(ctx context.Context, prefix string, limit int) ([]models.KeyValue, error)

	// CurrentStateDescriptor reports the replica's client id, the state id it
	// was last synchronized to and the checksum of its content.
	CurrentStateDescriptor(ctx context.Context) (models.StateDescriptor, error)

	Close() error
}

// Registry routes database names to open replicas. It is safe for
// concurrent use.
type Registry interface {
	// Open opens (creating if needed) the replica named dbName. Opening an
	// already open replica is a no-op.
	Open(ctx context.Context, dbName string) error
	// Close closes the replica named dbName. Closing a replica that is not
	// open returns [ErrDatabaseNotOpen].
	Close(ctx context.Context, dbName string) error
	// Get returns the open replica named dbName.
	Get(dbName string) (LocalStore, error)
	// CurrentStateDescriptor is Get followed by the replica's own
	// CurrentStateDescriptor.
	CurrentStateDescriptor(ctx context.Context, dbName string) (models.StateDescriptor, error)
	// CloseAll closes every open replica.
	CloseAll() error
}

// IDGenerator produces replica client ids.
type IDGenerator interface {
	Generate() string
}
