package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
	"github.com/seedbed/trellis/internal/sprout"
)

func newGraftCmd() *cobra.Command {
	var (
		configPath  string
		twig        string
		leaf        string
		title       string
		season      string
		environment string
		origin      string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "graft",
		Short: "Plant a new sprout on a leaf",
		Long: `Grafts a new goal (sprout) onto a goal thread (leaf), spending soil.
The cost depends on season (duration) and environment (commitment).
Pass --origin with a finished sprout's ID to chain a follow-up goal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sprout.GraftOpts{
				TwigName:    twig,
				LeafName:    leaf,
				OriginID:    origin,
				Title:       title,
				Season:      models.Season(season),
				Environment: models.Environment(environment),
			}
			if dryRun {
				return runGraftDryRun(cmd, opts)
			}
			return runGraft(cmd, configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().StringVar(&twig, "twig", "", "twig (life facet) name (required)")
	cmd.Flags().StringVar(&leaf, "leaf", "", "leaf (goal thread) name (required)")
	cmd.Flags().StringVar(&title, "title", "", "sprout title (required)")
	cmd.Flags().StringVar(&season, "season", "", "duration: 1w, 2w, 1m, 3m, 6m, 1y (required)")
	cmd.Flags().StringVar(&environment, "environment", "", "commitment: fertile, firm, barren (required)")
	cmd.Flags().StringVar(&origin, "origin", "", "finished sprout ID this one continues from")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the soil cost without planting")
	cmd.MarkFlagRequired("twig")
	cmd.MarkFlagRequired("leaf")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("season")
	cmd.MarkFlagRequired("environment")
	return cmd
}

// runGraftDryRun prices a graft without touching the database.
func runGraftDryRun(cmd *cobra.Command, opts sprout.GraftOpts) error {
	if !opts.Season.Valid() {
		return fmt.Errorf("%q is not a season (1w, 2w, 1m, 3m, 6m, 1y)", string(opts.Season))
	}
	if !opts.Environment.Valid() {
		return fmt.Errorf("%q is not an environment (fertile, firm, barren)", string(opts.Environment))
	}
	cost := ledger.CostOf(opts.Season, opts.Environment)
	fmt.Fprintf(cmd.OutOrStdout(), "A %s sprout in %s soil costs %d soil.\n",
		opts.Season.Label(), opts.Environment, cost)
	return nil
}

func runGraft(cmd *cobra.Command, configPath string, opts sprout.GraftOpts) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	engine := sprout.NewEngine(gormDB)
	s, err := engine.Graft(opts)
	if err != nil {
		return err
	}

	soil, err := ledger.New(gormDB).AvailableSoil()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grafted sprout %s: %s\n", s.ID, s.Title)
	fmt.Fprintf(out, "Season: %s (%s) | Environment: %s | Cost: %d soil\n",
		s.Season, s.Season.Label(), s.Environment, s.SoilCost)
	if s.GraftedFromID != nil {
		fmt.Fprintf(out, "Continues from: %s\n", *s.GraftedFromID)
	}
	fmt.Fprintf(out, "Ends: %s\n", s.EndsAt.Format("2006-01-02"))
	fmt.Fprintf(out, "Soil remaining: %d\n", soil)
	return nil
}
