package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dealsense/internal/engine"
	"github.com/donaldgifford/dealsense/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample deals and profiles into an empty database",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	st, err := openStore(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	eng := engine.NewEngine(st, engine.WithLogger(logger.Component(log, "engine")))
	res, err := eng.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	if res.Skipped {
		log.Info("database already populated, seed skipped")
		return nil
	}
	log.Info("seed complete", "deals", res.Deals, "profiles", res.Profiles)
	return nil
}
