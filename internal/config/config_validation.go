// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

// ValidateServer checks the settings the serve command needs.
func (cfg *ClientConfig) ValidateServer() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: neither http nor grpc address is set", ErrInvalidServerConfigs)
	}

	return nil
}

// ValidateSync checks the settings the sync command needs.
func (cfg *ClientConfig) ValidateSync() error {
	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Sync.DatabaseName == "" {
		return fmt.Errorf("%w: database name is empty", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.DiffServerURL == "" {
		return fmt.Errorf("%w: diff server url is empty", ErrInvalidSyncConfigs)
	}

	return nil
}
