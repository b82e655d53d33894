package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newLintTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "lint"}
	cmd.Flags().StringSlice("rule", nil, "")
	cmd.Flags().StringSlice("plugin", nil, "")
	cmd.Flags().StringSlice("runner", nil, "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().Bool("cache", false, "")
	return cmd
}

func TestBuildDriverOptions_ManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	manifest := `[lint]
rules = ["use-isnan"]
plugins = ["custom.mjs"]
jobs = 2
`
	if err := os.WriteFile(filepath.Join(dir, "denolint.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatalf("write denolint.toml: %v", err)
	}

	opts, err := buildDriverOptions(newLintTestCmd(t), dir, false)
	if err != nil {
		t.Fatalf("buildDriverOptions: %v", err)
	}
	if len(opts.Rules) != 1 || opts.Rules[0] != "use-isnan" {
		t.Fatalf("opts.Rules = %v", opts.Rules)
	}
	if opts.Jobs != 2 {
		t.Fatalf("opts.Jobs = %d, want 2", opts.Jobs)
	}
	want := filepath.Join(dir, "custom.mjs")
	if len(opts.Plugins) != 1 || opts.Plugins[0].Path != want {
		t.Fatalf("opts.Plugins = %v, want path %s", opts.Plugins, want)
	}
}

func TestBuildDriverOptions_FlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `[lint]
rules = ["use-isnan"]
jobs = 2
`
	if err := os.WriteFile(filepath.Join(dir, "denolint.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatalf("write denolint.toml: %v", err)
	}

	cmd := newLintTestCmd(t)
	if err := cmd.Flags().Set("rule", "no-sparse-arrays"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("jobs", "7"); err != nil {
		t.Fatal(err)
	}

	opts, err := buildDriverOptions(cmd, dir, false)
	if err != nil {
		t.Fatalf("buildDriverOptions: %v", err)
	}
	if len(opts.Rules) != 1 || opts.Rules[0] != "no-sparse-arrays" {
		t.Fatalf("opts.Rules = %v", opts.Rules)
	}
	if opts.Jobs != 7 {
		t.Fatalf("opts.Jobs = %d, want 7", opts.Jobs)
	}
}

func TestBuildDriverOptions_NoConfigSkipsManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "denolint.toml"), []byte("[lint]\nrules = [\"use-isnan\"]\n"), 0o600); err != nil {
		t.Fatalf("write denolint.toml: %v", err)
	}

	opts, err := buildDriverOptions(newLintTestCmd(t), dir, true)
	if err != nil {
		t.Fatalf("buildDriverOptions: %v", err)
	}
	if len(opts.Rules) != 0 {
		t.Fatalf("opts.Rules = %v, want empty", opts.Rules)
	}
}

func TestUseColor(t *testing.T) {
	if !useColor("on", os.Stdout) {
		t.Error(`useColor("on") = false`)
	}
	if useColor("off", os.Stdout) {
		t.Error(`useColor("off") = true`)
	}
}

func TestHasTag(t *testing.T) {
	if !hasTag([]string{"recommended", "plugin"}, "plugin") {
		t.Error("expected tag match")
	}
	if hasTag([]string{"recommended"}, "plugin") {
		t.Error("unexpected tag match")
	}
	if hasTag(nil, "plugin") {
		t.Error("unexpected match on nil tags")
	}
}
