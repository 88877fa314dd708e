package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Trigger manual ingestion",
		Long:  "Runs the ingestion pipeline once on the server and prints the counts.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().TriggerIngestion(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Fetched %d, inserted %d, duplicates %d, invalid %d, alerts %d.\n",
				res.Fetched, res.Inserted, res.Duplicates, res.Invalid, res.Alerts,
			)
			return err
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().Seed(context.Background())
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "Database already populated, nothing seeded.")
				return nil
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d deals and %d profiles.\n", res.Deals, res.Profiles)
			return err
		},
	}
}
