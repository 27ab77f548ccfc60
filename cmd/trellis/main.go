package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trellis",
		Short: "Trellis — a goal garden in your terminal",
		Long:  "Trellis tracks personal goals as sprouts growing on leafy twigs, paid for out of a soil budget and reflected on under a weekly sun budget.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGardenCmd())
	cmd.AddCommand(newGraftCmd())
	cmd.AddCommand(newWaterCmd())
	cmd.AddCommand(newShineCmd())
	cmd.AddCommand(newCompleteCmd())
	cmd.AddCommand(newFailCmd())
	cmd.AddCommand(newSproutCmd())
	cmd.AddCommand(newTimelineCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newSoilCmd())
	cmd.AddCommand(newDigestCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trellis %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
