// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container every source is
// parsed into before merging.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the local replica settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen addresses of the dispatch hosts.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound HTTP settings used by the pull transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the periodic sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the session parameters the sync command pulls with.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage configures where replicas live.
type Storage struct {
	// Dir is the directory holding one SQLite file per database.
	// Env: STORAGE_DIR
	Dir string `env:"DIR"`
}

// Server holds network settings for the dispatch hosts.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP host ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC host ("host:port").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound dispatch.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound HTTP client settings.
type Adapter struct {
	// RequestTimeout bounds a single pull round trip.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

type Workers struct {
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Sync holds the parameters of the session the sync command runs.
type Sync struct {
	// Env: SYNC_DATABASE
	DatabaseName string `env:"DATABASE"`
	// Env: SYNC_DATA_LAYER_AUTH
	DataLayerAuth string `env:"DATA_LAYER_AUTH"`
	// Env: SYNC_DIFF_SERVER_URL
	DiffServerURL string `env:"DIFF_SERVER_URL"`
	// Env: SYNC_DIFF_SERVER_AUTH
	DiffServerAuth string `env:"DIFF_SERVER_AUTH"`
}

// defaults is the lowest-priority source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{Dir: "./data"},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{RequestTimeout: 30 * time.Second},
		Workers: Workers{SyncInterval: time.Minute},
	}
}
