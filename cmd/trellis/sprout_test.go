package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSproutCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"sprout", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("sprout --help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"list", "show"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected sprout help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestNewSproutCmd(t *testing.T) {
	cmd := newSproutCmd()
	if cmd.Use != "sprout" {
		t.Errorf("Use = %q, want %q", cmd.Use, "sprout")
	}
	if !cmd.HasSubCommands() {
		t.Error("sprout command should have subcommands")
	}
}

func TestNewSproutListCmd(t *testing.T) {
	cmd := newSproutListCmd()
	if cmd.Use != "list" {
		t.Errorf("Use = %q, want %q", cmd.Use, "list")
	}
	for _, name := range []string{"twig", "leaf", "status", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}
}

func TestNewSproutShowCmd(t *testing.T) {
	cmd := newSproutShowCmd()
	if cmd.Use != "show <id>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "show <id>")
	}
}

func TestSproutShowCmd_NoArgs(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"sprout", "show"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing args")
	}
}

func TestSproutListCmd_MissingConfig(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"sprout", "list", "--config", "/nonexistent/trellis.yaml"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}
