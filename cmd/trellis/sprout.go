package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/sprout"
)

func newSproutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprout",
		Short: "Sprout inspection commands",
	}

	cmd.AddCommand(newSproutListCmd())
	cmd.AddCommand(newSproutShowCmd())
	return cmd
}

func newSproutListCmd() *cobra.Command {
	var (
		configPath string
		twig       string
		leaf       string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sprouts",
		Long:  "Lists sprouts with optional filters by twig name, leaf name, and status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSproutList(cmd, configPath, twig, leaf, status)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().StringVar(&twig, "twig", "", "filter by twig name")
	cmd.Flags().StringVar(&leaf, "leaf", "", "filter by leaf name (requires --twig)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, completed, failed)")
	return cmd
}

func runSproutList(cmd *cobra.Command, configPath, twigName, leafName, status string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	filters, err := resolveFilters(gormDB, twigName, leafName, status)
	if err != nil {
		return err
	}

	sprouts, err := sprout.List(gormDB, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sprouts) == 0 {
		fmt.Fprintln(out, "No sprouts found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSEASON\tENV\tSTATUS\tCOST\tENDS")
	for _, s := range sprouts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, truncate(s.Title, 40), s.Season, s.Environment,
			s.Status, s.SoilCost, s.EndsAt.Format("2006-01-02"))
	}
	w.Flush()
	return nil
}

// resolveFilters translates twig and leaf names into IDs for listing.
func resolveFilters(gormDB *gorm.DB, twigName, leafName, status string) (sprout.ListFilters, error) {
	filters := sprout.ListFilters{Status: status}

	if leafName != "" && twigName == "" {
		return filters, fmt.Errorf("--leaf requires --twig")
	}
	if twigName != "" {
		twig, err := sprout.TwigByName(gormDB, twigName)
		if err != nil {
			return filters, err
		}
		filters.TwigID = twig.ID

		if leafName != "" {
			leaf, err := sprout.LeafByName(gormDB, twigName, leafName)
			if err != nil {
				return filters, err
			}
			filters.LeafID = leaf.ID
		}
	}
	return filters, nil
}

func newSproutShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show sprout details",
		Long:  "Displays full details of a sprout including its outcome and watering journal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSproutShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runSproutShow(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	s, err := sprout.Get(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:           %s\n", s.ID)
	fmt.Fprintf(out, "Title:        %s\n", s.Title)
	fmt.Fprintf(out, "Status:       %s\n", s.Status)
	fmt.Fprintf(out, "Season:       %s (%s)\n", s.Season, s.Season.Label())
	fmt.Fprintf(out, "Environment:  %s\n", s.Environment)
	fmt.Fprintf(out, "Soil cost:    %d\n", s.SoilCost)
	if s.GraftedFromID != nil {
		fmt.Fprintf(out, "Grafted from: %s\n", *s.GraftedFromID)
	}
	fmt.Fprintf(out, "Planted:      %s\n", s.ActivatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Ends:         %s\n", s.EndsAt.Format("2006-01-02"))
	if s.CompletedAt != nil {
		fmt.Fprintf(out, "Closed:       %s\n", s.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if s.Result != nil {
		fmt.Fprintf(out, "Result:       %d/5\n", *s.Result)
	}
	if s.OutcomeNote != "" {
		fmt.Fprintf(out, "\nOutcome:\n%s\n", s.OutcomeNote)
	}

	if len(s.Waterings) > 0 {
		fmt.Fprintln(out, "\nWaterings:")
		for _, w := range s.Waterings {
			fmt.Fprintf(out, "  [%s] %s\n", w.CreatedAt.Format("2006-01-02 15:04"), w.Content)
		}
	}
	return nil
}
