//go:build !(js && wasm)

package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diff-sync/internal/handler"
	"github.com/MKhiriev/go-diff-sync/internal/server"
)

// GetServeCmd returns the HTTP/gRPC gateway hosts start command.
func GetServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dispatch gateway over HTTP and gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					log.Err(closeErr).Msg("failed to close replicas")
				}
			}()

			if err = cfg.ValidateServer(); err != nil {
				return err
			}

			log.Debug().Any("server", cfg.Server).Msg("received configs")

			handlers, err := handler.NewHandlers(app.Gateway(), buildInfo(), cfg.Server, log)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(handlers, cfg.Server, log)
			if err != nil {
				return err
			}

			// blocks until SIGINT/SIGTERM/SIGQUIT
			return srv.RunServer(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(GetServeCmd())
}
