// Package cmd implements the CLI commands for the dealsense server.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dealsense/internal/config"
	"github.com/donaldgifford/dealsense/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dealsense",
	Short: "Match, verify and rank shopping deals",
	Long: "An API-first service that collects promotional deals, scores their trustworthiness,\n" +
		"matches them against saved interest profiles, and alerts on strong matches.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root command, for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}
