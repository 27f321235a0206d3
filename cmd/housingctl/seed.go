package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/campus-housing/internal/database"
	"github.com/iliyamo/campus-housing/internal/repository"
	"github.com/iliyamo/campus-housing/internal/seed"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert scraped official listings and prune the stale ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("no scraped data at %s: %w", file, err)
			}
			scraped, err := seed.Decode(f)
			f.Close()
			if err != nil {
				return err
			}

			cfg, err := dbConfig(c.v)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			// Truncated to what DATETIME(3) stores so the prune comparison
			// matches the value written by the upserts exactly.
			runAt := time.Now().UTC().Truncate(time.Millisecond)
			res := seed.Run(cmd.Context(), repository.NewListingRepo(db), scraped, runAt)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "upserted: %d, errors: %d\n", res.Upserted, res.Errors)
			if res.PruneErr != nil {
				return fmt.Errorf("prune stale listings: %w", res.PruneErr)
			}
			fmt.Fprintf(out, "pruned: %d\n", res.Pruned)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "scripts/data/scraped_listings.json", "scraped listings JSON array")
	return cmd
}
