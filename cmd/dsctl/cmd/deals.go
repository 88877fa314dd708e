package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/dealsense/internal/api/client"
)

func dealsCmd() *cobra.Command {
	dealsRoot := &cobra.Command{
		Use:   "deals",
		Short: "Browse deals",
		Long:  "Browse trending deals, deals ranked for a profile, and single deal details.",
	}

	dealsRoot.AddCommand(
		dealsHotCmd(),
		dealsForCmd(),
		dealsGetCmd(),
	)

	return dealsRoot
}

func dealsHotCmd() *cobra.Command {
	var window, sortBy string

	cmd := &cobra.Command{
		Use:   "hot",
		Short: "List trending deals",
		Example: `  dsctl deals hot
  dsctl deals hot --window 7d --sort discount`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().HotDeals(context.Background(), window, sortBy)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, res)
			}
			if len(res.Items) == 0 {
				_, err := fmt.Fprintf(out, "No deals in the last %s.\n", res.Window)
				return err
			}
			return printDealsTable(out, res.Items)
		},
	}

	cmd.Flags().StringVar(&window, "window", "24h", "look-back window (24h, 7d)")
	cmd.Flags().StringVar(&sortBy, "sort", "popularity", "ordering (popularity, discount)")
	return cmd
}

func dealsForCmd() *cobra.Command {
	params := apiclient.InterestsParams{}

	cmd := &cobra.Command{
		Use:   "for <profile-id>",
		Short: "List deals ranked for a profile",
		Example: `  dsctl deals for p_camping_user
  dsctl deals for p_camping_user --limit 5 --no-dedupe`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.ProfileID = args[0]
			res, err := newClient().DealsByInterests(context.Background(), &params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, res)
			}
			if len(res.Items) > 0 {
				if err := printDealsTable(out, res.Items); err != nil {
					return err
				}
			}
			return printNotes(out, res.Notes)
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum results (1-30, default 20)")
	cmd.Flags().BoolVar(&params.NoDedupe, "no-dedupe", false, "keep near-duplicate listings")
	return cmd
}

func dealsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <deal-id>",
		Short: "Show deal details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newClient().GetDeal(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), d)
			}
			return printDealDetail(cmd.OutOrStdout(), d)
		},
	}
}
