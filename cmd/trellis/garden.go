package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/config"
	"github.com/seedbed/trellis/internal/db"
	"github.com/seedbed/trellis/internal/ledger"
)

func newGardenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garden",
		Short: "Garden database management commands",
	}

	cmd.AddCommand(newGardenInitCmd())
	cmd.AddCommand(newGardenResetCmd())
	return cmd
}

func newGardenInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the garden database",
		Long:  "Creates or migrates all tables, seeds the declared twigs and leaves, and plants the starting resource budgets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGardenInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	return cmd
}

func runGardenInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config for gardener %q from %s\n", cfg.Gardener, configPath)

	gormDB, err := db.Open(cfg.Storage)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if err := db.SeedTwigs(gormDB, cfg.Twigs); err != nil {
		return err
	}
	if len(cfg.Twigs) > 0 {
		fmt.Fprintf(out, "Seeded %d twigs:", len(cfg.Twigs))
		for _, tw := range cfg.Twigs {
			fmt.Fprintf(out, " %s", tw.Name)
		}
		fmt.Fprintln(out)
	}

	if err := db.SeedLedger(gormDB, cfg.Economy, time.Now().UTC()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Ledger ready: %d soil, %d sun per week\n", cfg.Economy.StartingSoil, cfg.Economy.SunCapacity)

	fmt.Fprintln(out, "\nGarden initialized successfully.")
	return nil
}

func newGardenResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-initialize the garden database",
		Long: `Drops every garden table — twigs, leaves, sprouts, journal entries,
and the resource ledger — then re-creates and re-seeds them from config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGardenReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "trellis.yaml", "path to Trellis config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runGardenReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !skipConfirm && !confirmReset(cmd) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	gormDB, err := db.Open(cfg.Storage)
	if err != nil {
		return err
	}

	for _, m := range db.AllModels() {
		if err := gormDB.Migrator().DropTable(m); err != nil {
			return fmt.Errorf("drop table for %T: %w", m, err)
		}
	}
	fmt.Fprintln(out, "Dropped all garden tables")

	return runGardenInit(cmd, configPath)
}

// confirmReset asks the user to confirm a destructive reset.
func confirmReset(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "This deletes every sprout and journal entry. Type y to continue: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// connectFromConfig loads the config and opens the garden database.
// It also runs the idempotent weekly sun replenishment so any command
// sees a current balance.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	if _, err := ledger.New(gormDB).ReplenishSun(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("garden not initialized; run 'trellis garden init' first")
		}
		return nil, nil, err
	}

	return cfg, gormDB, nil
}
