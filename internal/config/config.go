// Package config provides YAML-based configuration loading for Trellis.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Trellis configuration, loaded from trellis.yaml.
type Config struct {
	Gardener string        `yaml:"gardener"`
	Storage  StorageConfig `yaml:"storage"`
	Economy  EconomyConfig `yaml:"economy"`
	Twigs    []TwigConfig  `yaml:"twigs"`
	Prompts  []string      `yaml:"prompts"`
	Notify   NotifyConfig  `yaml:"notify"`
}

// StorageConfig selects the database backend. The default is a local
// SQLite file; a MySQL DSN can be given for a self-hosted database.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite or mysql
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // mysql connection string
}

// EconomyConfig tunes the resource budgets seeded into a fresh garden.
type EconomyConfig struct {
	StartingSoil int `yaml:"starting_soil"`
	SunCapacity  int `yaml:"sun_capacity"`
}

// TwigConfig declares a life-facet category and its initial goal threads.
type TwigConfig struct {
	Name   string   `yaml:"name"`
	Leaves []string `yaml:"leaves"`
}

// NotifyConfig holds optional digest destinations.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack digest settings.
type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// DiscordConfig holds Discord digest settings.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		c.Storage.Path = "trellis.db"
	}
	if c.Economy.StartingSoil == 0 {
		c.Economy.StartingSoil = 100
	}
	if c.Economy.SunCapacity == 0 {
		c.Economy.SunCapacity = 3
	}
	if len(c.Prompts) == 0 {
		c.Prompts = DefaultPrompts()
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Gardener == "" {
		errs = append(errs, "gardener is required")
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			errs = append(errs, "storage.path is required for sqlite")
		}
	case "mysql":
		if c.Storage.DSN == "" {
			errs = append(errs, "storage.dsn is required for mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not supported (sqlite, mysql)", c.Storage.Driver))
	}
	if c.Economy.StartingSoil < 0 {
		errs = append(errs, "economy.starting_soil must not be negative")
	}
	if c.Economy.SunCapacity < 0 {
		errs = append(errs, "economy.sun_capacity must not be negative")
	}
	for i, tw := range c.Twigs {
		if tw.Name == "" {
			errs = append(errs, fmt.Sprintf("twigs[%d].name is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultPrompts is the built-in watering/reflection prompt pool, used
// when the config does not supply its own.
func DefaultPrompts() []string {
	return []string{
		"What moved forward today?",
		"What got in the way?",
		"What would make tomorrow easier?",
		"What surprised you this week?",
		"What are you avoiding?",
		"What small win is worth naming?",
		"If this goal were a plant, how does it look right now?",
		"What would you tell a friend in your position?",
		"What's the next physical action?",
		"What did you learn that you didn't expect to?",
		"Where did the time actually go?",
		"What deserves less of your attention?",
	}
}
