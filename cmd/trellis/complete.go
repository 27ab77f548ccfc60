package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/sprout"
)

func newCompleteCmd() *cobra.Command {
	var (
		configPath string
		result     int
		note       string
	)

	cmd := &cobra.Command{
		Use:   "complete <sprout-id>",
		Short: "Mark a sprout completed with an outcome",
		Long: `Completes an active sprout, recording a result from 1 (barely) to
5 (fully) and an optional outcome note. Spent soil is not refunded;
graft a follow-up sprout to continue the thread.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(cmd, configPath, args[0], result, note)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().IntVar(&result, "result", 0, "outcome score, 1-5 (required)")
	cmd.Flags().StringVar(&note, "note", "", "outcome note")
	cmd.MarkFlagRequired("result")
	return cmd
}

func runComplete(cmd *cobra.Command, configPath, id string, result int, note string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	engine := sprout.NewEngine(gormDB)
	if err := engine.Complete(id, result, note); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed %s with result %d/5\n", id, result)
	fmt.Fprintf(out, "Graft a new sprout with --origin %s to continue the thread.\n", id)
	return nil
}

func newFailCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fail <sprout-id>",
		Short: "Mark a sprout failed",
		Long:  "Fails an active sprout. Spent soil is not refunded; the leaf is free for a new graft.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFail(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runFail(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	engine := sprout.NewEngine(gormDB)
	if err := engine.Fail(id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Failed %s\n", id)
	return nil
}
