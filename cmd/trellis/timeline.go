package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/reflection"
	"github.com/seedbed/trellis/internal/sprout"
	"github.com/seedbed/trellis/internal/timeline"
)

func newTimelineCmd() *cobra.Command {
	var (
		configPath string
		twig       string
		leaf       string
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show a leaf's chronological history",
		Long: `Assembles a leaf's full story as one sequence, most recent first:
plantings, grafts, waterings, the owning twig's reflections, and
completions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd, configPath, twig, leaf)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().StringVar(&twig, "twig", "", "twig name (required)")
	cmd.Flags().StringVar(&leaf, "leaf", "", "leaf name (required)")
	cmd.MarkFlagRequired("twig")
	cmd.MarkFlagRequired("leaf")
	return cmd
}

func runTimeline(cmd *cobra.Command, configPath, twigName, leafName string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	lf, err := sprout.LeafByName(gormDB, twigName, leafName)
	if err != nil {
		return err
	}

	sprouts, err := sprout.List(gormDB, sprout.ListFilters{LeafID: lf.ID})
	if err != nil {
		return err
	}

	reflections, err := reflection.ListForTwig(gormDB, lf.TwigID)
	if err != nil {
		return err
	}

	events := timeline.Build(sprouts, reflections)

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintf(out, "Nothing has happened on %s/%s yet.\n", twigName, leafName)
		return nil
	}

	fmt.Fprintf(out, "Timeline for %s/%s\n\n", twigName, leafName)
	for _, ev := range events {
		fmt.Fprintf(out, "%s  %s\n", ev.At.Format("2006-01-02 15:04"), formatEvent(ev))
	}
	return nil
}

// formatEvent renders one timeline row.
func formatEvent(ev timeline.Event) string {
	switch ev.Kind {
	case timeline.KindStart:
		return fmt.Sprintf("planted %q (%s)", ev.Title, ev.SproutID)
	case timeline.KindGraft:
		return fmt.Sprintf("grafted %q from %s", ev.Title, ev.Label)
	case timeline.KindWatering:
		return fmt.Sprintf("watered %q: %s", ev.Title, truncate(ev.Label, 60))
	case timeline.KindReflection:
		return fmt.Sprintf("reflected: %s", truncate(ev.Label, 60))
	case timeline.KindCompletion:
		verb := "failed"
		if ev.Success != nil && *ev.Success {
			verb = "completed"
		}
		if ev.Label != "" {
			return fmt.Sprintf("%s %q: %s", verb, ev.Title, truncate(ev.Label, 60))
		}
		return fmt.Sprintf("%s %q", verb, ev.Title)
	}
	return string(ev.Kind)
}
