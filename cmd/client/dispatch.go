//go:build !(js && wasm)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/gateway"
)

const (
	FlagRPC  = "rpc"
	FlagArgs = "args"
)

// GetDispatchCmd returns the one-shot dispatch command.
func GetDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run one gateway operation and print its JSON result",
		Example: `  diffsync dispatch --db todo --rpc put --args '{"key":"a","value":1}'
  diffsync dispatch --db todo --rpc 3 --args '{"key":"a"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parse inputs
			dbName, err := cmd.Flags().GetString(config.FlagDatabase)
			if err != nil {
				return fmt.Errorf("%s flag: %w", config.FlagDatabase, err)
			}
			rpc, err := cmd.Flags().GetString(FlagRPC)
			if err != nil {
				return fmt.Errorf("%s flag: %w", FlagRPC, err)
			}
			rawArgs, err := cmd.Flags().GetString(FlagArgs)
			if err != nil {
				return fmt.Errorf("%s flag: %w", FlagArgs, err)
			}

			if dbName == "" {
				return fmt.Errorf("%s flag is required", config.FlagDatabase)
			}
			op, err := gateway.LookupOperation(rpc)
			if err != nil {
				return err
			}

			// Work
			_, app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					log.Err(closeErr).Msg("failed to close replicas")
				}
			}()

			out, err := app.Exec(cmd.Context(), dbName, op, []byte(rawArgs))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().String(FlagRPC, "", "operation selector: code (0-7) or name (open, get, put, beginSync, ...)")
	cmd.Flags().String(FlagArgs, "", "(optional) JSON argument document")
	_ = cmd.MarkFlagRequired(FlagRPC)

	return cmd
}

func init() {
	rootCmd.AddCommand(GetDispatchCmd())
}
