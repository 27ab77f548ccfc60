package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seedbed/trellis/internal/notify"
)

func newDigestCmd() *cobra.Command {
	var (
		configPath string
		post       bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print or post the weekly garden digest",
		Long: `Summarizes the garden: resource balances, active sprouts, sprouts
ending within a week, and twigs still waiting on this week's
reflection. With --post, the digest is also sent to every chat
destination configured under notify.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, configPath, post)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().BoolVar(&post, "post", false, "post to configured Slack/Discord destinations")
	return cmd
}

func runDigest(cmd *cobra.Command, configPath string, post bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	d, err := notify.Gather(gormDB, cfg.Gardener, time.Now().UTC())
	if err != nil {
		return err
	}

	text := d.Format()
	out := cmd.OutOrStdout()
	fmt.Fprint(out, text)

	if !post {
		return nil
	}

	posters, err := notify.PostersFromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	if len(posters) == 0 {
		return fmt.Errorf("no notify destinations configured; add notify.slack or notify.discord to %s", configPath)
	}
	for _, p := range posters {
		if err := p.Post(text); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "\nPosted digest to %d destination(s)\n", len(posters))
	return nil
}
