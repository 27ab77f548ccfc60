package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
)

func newSoilCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soil",
		Short: "Soil budget commands",
	}

	cmd.AddCommand(newSoilGrantCmd())
	cmd.AddCommand(newSoilCostsCmd())
	return cmd
}

func newSoilGrantCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "grant <amount>",
		Short: "Credit soil to the garden",
		Long: `Grants soil to the planting budget. Soil has no weekly cadence;
grants are the deliberate way capacity is replenished, typically after
a stretch of finished goals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount must be a number, got %q", args[0])
			}
			return runSoilGrant(cmd, configPath, amount)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runSoilGrant(cmd *cobra.Command, configPath string, amount int) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	led := ledger.New(gormDB)
	if err := led.GrantSoil(amount); err != nil {
		return err
	}

	soil, err := led.AvailableSoil()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Granted %d soil. Balance: %d\n", amount, soil)
	return nil
}

func newSoilCostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Show the graft cost table",
		Long:  "Prints the soil cost of every season and environment combination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSoilCosts(cmd)
		},
	}
	return cmd
}

// runSoilCosts needs no database; the table is fixed.
func runSoilCosts(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEASON\tFERTILE\tFIRM\tBARREN")
	for _, season := range models.Seasons() {
		fmt.Fprintf(w, "%s (%s)", season, season.Label())
		for _, env := range models.Environments() {
			fmt.Fprintf(w, "\t%d", ledger.CostOf(season, env))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return nil
}
