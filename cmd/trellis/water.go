package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/prompts"
	"github.com/seedbed/trellis/internal/sprout"
)

func newWaterCmd() *cobra.Command {
	var (
		configPath string
		promptOnly bool
	)

	cmd := &cobra.Command{
		Use:   "water <sprout-id> [note...]",
		Short: "Add a journal entry to an active sprout",
		Long: `Waters a sprout: records a timestamped progress note against it.
Watering is free and unlimited; only active sprouts can be watered.
Run with --prompt to get a journal prompt without writing anything.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if promptOnly {
				return runWaterPrompt(cmd, configPath)
			}
			if len(args) < 1 {
				return fmt.Errorf("sprout ID is required")
			}
			if len(args) < 2 {
				return fmt.Errorf("note text is required; pass it after the sprout ID")
			}
			return runWater(cmd, configPath, args[0], strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().BoolVar(&promptOnly, "prompt", false, "print a journal prompt and exit")
	return cmd
}

// runWaterPrompt prints a prompt from the configured pool.
func runWaterPrompt(cmd *cobra.Command, configPath string) error {
	cfg, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	rot := prompts.NewRotation(cfg.Prompts, rand.NewSource(time.Now().UnixNano()))
	fmt.Fprintln(cmd.OutOrStdout(), rot.Next())
	return nil
}

func runWater(cmd *cobra.Command, configPath, sproutID, note string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	rot := prompts.NewRotation(cfg.Prompts, rand.NewSource(time.Now().UnixNano()))
	prompt := rot.Next()

	engine := sprout.NewEngine(gormDB)
	if err := engine.AddWatering(sproutID, note, prompt); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watered %s\n", sproutID)
	fmt.Fprintf(out, "Next time, consider: %s\n", prompt)
	return nil
}
