//go:build !(js && wasm)

package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diff-sync/internal/client"
	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/store"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
)

// newApp loads the layered config and wires a client over the sqlite
// replicas in the configured storage directory.
func newApp(cmd *cobra.Command) (*config.ClientConfig, *client.App, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	stores, err := store.NewSQLiteRegistry(cfg.Storage, utils.NewUUIDGenerator(), log)
	if err != nil {
		return nil, nil, err
	}

	app, err := client.NewApp(cfg, stores, log)
	if err != nil {
		return nil, nil, err
	}

	return cfg, app, nil
}
