//go:build !(js && wasm)

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const FlagLogLevel = "log-level"

var log = logger.NewLogger("diffsync")

// rootCmd is a base command.
var rootCmd = &cobra.Command{
	Use:           "diffsync",
	Short:         "Diff-sync client: local replicas, dispatch hosts and the sync worker",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		printBuildInfo(cmd.ErrOrStderr())

		level, err := cmd.Flags().GetString(FlagLogLevel)
		if err != nil {
			return fmt.Errorf("%s flag: %w", FlagLogLevel, err)
		}
		return logger.SetLevel(level)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "Log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("diffsync failed")
	}
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

// printBuildInfo writes to stderr so stdout carries only command output.
func printBuildInfo(w io.Writer) {
	info := buildInfo()

	fmt.Fprintf(w, "Build version: %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

