//go:build !(js && wasm)

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// GetSyncCmd returns the periodic begin-sync worker command.
func GetSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull from the diff server on a fixed interval",
		Example: `  diffsync sync --db todo --diff-server-url https://diff.example.com/pull \
    --diff-server-auth "Bearer ..." --sync-interval 30s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					log.Err(closeErr).Msg("failed to close replicas")
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			defer stop()

			return app.RunSync(ctx)
		},
	}
}

func init() {
	rootCmd.AddCommand(GetSyncCmd())
}
