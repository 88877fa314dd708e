package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dealsense/internal/engine"
)

func profilesCmd() *cobra.Command {
	profilesRoot := &cobra.Command{
		Use:   "profiles",
		Short: "Manage interest profiles",
		Long: "Manage saved profiles that define categories, keywords, brands,\n" +
			"exclusions, a price ceiling and a discount floor for deal matching.",
	}

	profilesRoot.AddCommand(
		profilesListCmd(),
		profilesSaveCmd(),
		profilesDeleteCmd(),
	)

	return profilesRoot
}

func profilesListCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Example: `  dsctl profiles list
  dsctl profiles list --id p_camping_user --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := newClient().ListProfiles(context.Background(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, profiles)
			}
			if len(profiles) == 0 {
				_, err := fmt.Fprintln(out, "No profiles found.")
				return err
			}
			return printProfilesTable(out, profiles)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "show only this profile")
	return cmd
}

func profilesSaveCmd() *cobra.Command {
	var (
		in          engine.ProfileInput
		priceMax    int64
		minDiscount int
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a profile",
		Example: `  dsctl profiles save --category 캠핑 --keyword 텐트 --keyword 침낭 --price-max 50000
  dsctl profiles save --id p_camping_user --exclude 중고 --min-discount 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("price-max") {
				in.PriceMax = &priceMax
			}
			if cmd.Flags().Changed("min-discount") {
				in.MinDiscountRate = &minDiscount
			}

			v, err := newClient().UpsertProfile(context.Background(), &in)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), v)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s\n", v.ID, v.Summary)
			return err
		},
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "profile ID to replace (empty creates a new profile)")
	cmd.Flags().StringSliceVar(&in.Categories, "category", nil, "category of interest (repeatable)")
	cmd.Flags().StringSliceVar(&in.Keywords, "keyword", nil, "title keyword (repeatable)")
	cmd.Flags().StringSliceVar(&in.Brands, "brand", nil, "preferred brand (repeatable)")
	cmd.Flags().StringSliceVar(&in.ExcludeKeywords, "exclude", nil, "keyword that rejects a deal (repeatable)")
	cmd.Flags().Int64Var(&priceMax, "price-max", 0, "price ceiling in won")
	cmd.Flags().IntVar(&minDiscount, "min-discount", 0, "minimum discount percentage")
	return cmd
}

func profilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().DeleteProfile(context.Background(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Profile %s deleted.\n", args[0])
			return err
		},
	}
}
