package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion pass against the configured sources and exit",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := cmd.Context()

	st, err := openStore(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	eng, closeCache, err := buildEngine(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	res, err := eng.RunIngestion(ctx)
	if err != nil {
		return fmt.Errorf("running ingestion: %w", err)
	}

	log.Info("ingestion complete",
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"duplicates", res.Duplicates,
		"invalid", res.Invalid,
		"alerts", res.Alerts,
	)
	return nil
}
