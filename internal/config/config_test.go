package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
gardener: alice

storage:
  driver: mysql
  dsn: "alice@tcp(10.0.0.5:3306)/trellis?parseTime=true"

economy:
  starting_soil: 250
  sun_capacity: 5

twigs:
  - name: health
    leaves: [running, sleep]
  - name: craft
    leaves: [woodworking]

prompts:
  - "What moved forward today?"
  - "What got in the way?"

notify:
  slack:
    bot_token: xoxb-test
    channel: C012345
  discord:
    bot_token: discord-test
    channel: "987654"
`

const minimalYAML = `
gardener: bob
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gardener != "alice" {
		t.Errorf("Gardener = %q, want %q", cfg.Gardener, "alice")
	}
	if cfg.Storage.Driver != "mysql" {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, "mysql")
	}
	if !strings.Contains(cfg.Storage.DSN, "10.0.0.5") {
		t.Errorf("Storage.DSN = %q, want host 10.0.0.5", cfg.Storage.DSN)
	}
	if cfg.Economy.StartingSoil != 250 {
		t.Errorf("Economy.StartingSoil = %d, want 250", cfg.Economy.StartingSoil)
	}
	if cfg.Economy.SunCapacity != 5 {
		t.Errorf("Economy.SunCapacity = %d, want 5", cfg.Economy.SunCapacity)
	}
	if len(cfg.Twigs) != 2 {
		t.Fatalf("len(Twigs) = %d, want 2", len(cfg.Twigs))
	}
	if cfg.Twigs[0].Name != "health" {
		t.Errorf("Twigs[0].Name = %q, want %q", cfg.Twigs[0].Name, "health")
	}
	if len(cfg.Twigs[0].Leaves) != 2 {
		t.Errorf("len(Twigs[0].Leaves) = %d, want 2", len(cfg.Twigs[0].Leaves))
	}
	if len(cfg.Prompts) != 2 {
		t.Errorf("len(Prompts) = %d, want 2 (config pool should win over defaults)", len(cfg.Prompts))
	}
	if cfg.Notify.Slack.Channel != "C012345" {
		t.Errorf("Notify.Slack.Channel = %q, want C012345", cfg.Notify.Slack.Channel)
	}
	if cfg.Notify.Discord.BotToken != "discord-test" {
		t.Errorf("Notify.Discord.BotToken = %q, want discord-test", cfg.Notify.Discord.BotToken)
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want %q (default)", cfg.Storage.Driver, "sqlite")
	}
	if cfg.Storage.Path != "trellis.db" {
		t.Errorf("Storage.Path = %q, want %q (default)", cfg.Storage.Path, "trellis.db")
	}
	if cfg.Economy.StartingSoil != 100 {
		t.Errorf("Economy.StartingSoil = %d, want 100 (default)", cfg.Economy.StartingSoil)
	}
	if cfg.Economy.SunCapacity != 3 {
		t.Errorf("Economy.SunCapacity = %d, want 3 (default)", cfg.Economy.SunCapacity)
	}
	if len(cfg.Prompts) == 0 {
		t.Error("expected default prompt pool, got none")
	}
}

func TestParse_MissingGardener(t *testing.T) {
	_, err := Parse([]byte("storage:\n  driver: sqlite\n"))
	if err == nil {
		t.Fatal("expected validation error for missing gardener")
	}
	if !strings.Contains(err.Error(), "gardener is required") {
		t.Errorf("error = %v, want mention of gardener", err)
	}
}

func TestParse_UnsupportedDriver(t *testing.T) {
	_, err := Parse([]byte("gardener: bob\nstorage:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected validation error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("error = %v, want driver complaint", err)
	}
}

func TestParse_MySQLRequiresDSN(t *testing.T) {
	_, err := Parse([]byte("gardener: bob\nstorage:\n  driver: mysql\n"))
	if err == nil {
		t.Fatal("expected validation error for mysql without dsn")
	}
	if !strings.Contains(err.Error(), "storage.dsn is required") {
		t.Errorf("error = %v, want dsn complaint", err)
	}
}

func TestParse_UnnamedTwig(t *testing.T) {
	_, err := Parse([]byte("gardener: bob\ntwigs:\n  - leaves: [a]\n"))
	if err == nil {
		t.Fatal("expected validation error for unnamed twig")
	}
	if !strings.Contains(err.Error(), "twigs[0].name") {
		t.Errorf("error = %v, want twig name complaint", err)
	}
}

func TestParse_NegativeEconomy(t *testing.T) {
	_, err := Parse([]byte("gardener: bob\neconomy:\n  starting_soil: -5\n"))
	if err == nil {
		t.Fatal("expected validation error for negative starting soil")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("gardener: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trellis.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gardener != "bob" {
		t.Errorf("Gardener = %q, want bob", cfg.Gardener)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
