package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dealsense/internal/engine"
)

func verifyCmd() *cobra.Command {
	var req engine.VerifyRequest

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Assess how trustworthy a deal looks",
		Example: `  dsctl verify --deal d_0001
  dsctl verify --title "리퍼 노트북 특가" --url https://www.coupang.com/vp/products/1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req == (engine.VerifyRequest{}) {
				return errors.New("one of --deal, --url or --title is required")
			}
			v, err := newClient().VerifyDeal(context.Background(), req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), v)
			}
			return printVerification(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().StringVar(&req.DealID, "deal", "", "stored deal ID")
	cmd.Flags().StringVar(&req.URL, "url", "", "listing URL")
	cmd.Flags().StringVar(&req.Title, "title", "", "listing title")
	return cmd
}
