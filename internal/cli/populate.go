package cli

import (
	"fmt"

	"github.com/Marga-Ghale/ora-lists/internal/seed"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/spf13/cobra"
)

func newPopulateCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "populate <listId>",
		Short: "Replace a list's categories and items with the default content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, closeRepos, err := opts.OpenRepos(opts.Config)
			if err != nil {
				return err
			}
			defer closeRepos()

			lists := service.NewListService(repos.ListRepo, repos.ContentRepo, nil)
			result, err := lists.Populate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Populated list %s: %d categories, %d items\n", args[0], result.Categories, result.Items)
			return nil
		},
	}
}

func newSeedCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo profiles and a populated demo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, closeRepos, err := opts.OpenRepos(opts.Config)
			if err != nil {
				return err
			}
			defer closeRepos()

			if err := seed.SeedData(cmd.Context(), repos); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed complete")
			return nil
		},
	}
}
