package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/prompts"
	"github.com/seedbed/trellis/internal/reflection"
	"github.com/seedbed/trellis/internal/sprout"
)

func newShineCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shine <twig-name> <reflection...>",
		Short: "Record a weekly reflection on a twig",
		Long: `Shines on a twig: records a reflection entry, spending one sun.
Each twig can be reflected on at most once per calendar week, and the
sun budget replenishes every Monday.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShine(cmd, configPath, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runShine(cmd *cobra.Command, configPath, twigName, content string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	twig, err := sprout.TwigByName(gormDB, twigName)
	if err != nil {
		return err
	}

	rot := prompts.NewRotation(cfg.Prompts, rand.NewSource(time.Now().UnixNano()))
	prompt := rot.Next()

	gate := reflection.NewGate(gormDB)
	if _, err := gate.Record(twig.ID, content, prompt); err != nil {
		switch {
		case errors.Is(err, reflection.ErrWeeklyLimit):
			return fmt.Errorf("twig %q already has a reflection this week; the gate resets Monday", twigName)
		case errors.Is(err, ledger.ErrInsufficientSun):
			return fmt.Errorf("no sun left this week; the budget replenishes Monday")
		}
		return err
	}

	sun, err := ledger.New(gormDB).AvailableSun()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reflected on %s\n", twigName)
	fmt.Fprintf(out, "Sun remaining this week: %d\n", sun)
	return nil
}
