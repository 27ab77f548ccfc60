package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGardenCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"garden", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("garden --help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"init", "reset"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected garden help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewGardenCmd(t *testing.T) {
	cmd := newGardenCmd()
	if cmd.Use != "garden" {
		t.Errorf("Use = %q, want %q", cmd.Use, "garden")
	}
	if !cmd.HasSubCommands() {
		t.Error("garden command should have subcommands")
	}
}

func TestNewGardenInitCmd(t *testing.T) {
	cmd := newGardenInitCmd()
	if cmd.Use != "init" {
		t.Errorf("Use = %q, want %q", cmd.Use, "init")
	}

	cfgFlag := cmd.Flags().Lookup("config")
	if cfgFlag == nil {
		t.Fatal("expected --config flag")
	}
	if cfgFlag.DefValue != "trellis.yaml" {
		t.Errorf("--config default = %q, want %q", cfgFlag.DefValue, "trellis.yaml")
	}
	if cfgFlag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", cfgFlag.Shorthand, "c")
	}
}

func TestGardenInitCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"garden", "init", "--config", "/nonexistent/trellis.yaml"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestNewGardenResetCmd(t *testing.T) {
	cmd := newGardenResetCmd()
	if cmd.Use != "reset" {
		t.Errorf("Use = %q, want %q", cmd.Use, "reset")
	}
	if cmd.Flags().Lookup("yes") == nil {
		t.Error("expected --yes flag")
	}
}

func TestGardenResetCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"garden", "reset", "--yes", "--config", "/nonexistent/trellis.yaml"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfirmReset(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false}, // EOF before newline
	}
	for _, tt := range tests {
		cmd := newGardenResetCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetIn(strings.NewReader(tt.input))
		if got := confirmReset(cmd); got != tt.want {
			t.Errorf("confirmReset(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
