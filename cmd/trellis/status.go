package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
	"github.com/seedbed/trellis/internal/reflection"
	"github.com/seedbed/trellis/internal/sprout"
)

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the garden at a glance",
		Long:  "Displays the resource balances and every twig with its leaves, active sprouts, and weekly reflection state.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runStatus(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	led := ledger.New(gormDB)
	soil, err := led.AvailableSoil()
	if err != nil {
		return err
	}
	sun, err := led.AvailableSun()
	if err != nil {
		return err
	}
	capacity, err := led.SunCapacity()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Garden of %s\n", cfg.Gardener)
	fmt.Fprintf(out, "Soil: %d | Sun: %d/%d\n\n", soil, sun, capacity)

	twigs, err := sprout.ListTwigs(gormDB)
	if err != nil {
		return err
	}
	if len(twigs) == 0 {
		fmt.Fprintln(out, "No twigs yet. Declare them in config and run 'trellis garden init', or graft directly.")
		return nil
	}

	gate := reflection.NewGate(gormDB)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TWIG\tLEAF\tACTIVE SPROUT\tENDS\tREFLECTED")
	for _, tw := range twigs {
		reflected, err := gate.WasReflectedThisWeek(tw.ID)
		if err != nil {
			return err
		}
		mark := "no"
		if reflected {
			mark = "yes"
		}

		if len(tw.Leaves) == 0 {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", tw.Name, mark)
			continue
		}
		for _, lf := range tw.Leaves {
			active, err := sprout.List(gormDB, sprout.ListFilters{
				LeafID: lf.ID,
				Status: models.StatusActive,
			})
			if err != nil {
				return err
			}
			if len(active) == 0 {
				fmt.Fprintf(w, "%s\t%s\t-\t-\t%s\n", tw.Name, lf.Name, mark)
				continue
			}
			s := active[0]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				tw.Name, lf.Name, truncate(s.Title, 40), s.EndsAt.Format("2006-01-02"), mark)
		}
	}
	w.Flush()
	return nil
}
