package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanquar/deno-lint/internal/config"
	"github.com/tanquar/deno-lint/internal/diagfmt"
	"github.com/tanquar/deno-lint/internal/driver"
	"github.com/tanquar/deno-lint/internal/plugin"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file.ast.json|directory>",
	Short: "Run lint rules over an AST dump or a directory of dumps",
	Long:  `Run built-in and plugin lint rules over ESTree AST dumps (*.ast.json) produced by a JS/TS parser front end`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

// init registers CLI flags for the lint command used by runLint.
// It configures output format, rule and plugin selection, the sandbox
// runner, concurrency, caching and path rendering.
func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lintCmd.Flags().StringSlice("rule", nil, "built-in rule codes to run (default: all)")
	lintCmd.Flags().StringSlice("plugin", nil, "external rule module paths")
	lintCmd.Flags().StringSlice("runner", nil, "plugin sandbox command (default: deno run --quiet --allow-read)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	lintCmd.Flags().Bool("cache", false, "enable persistent disk cache for lint results")
	lintCmd.Flags().Bool("no-config", false, "skip denolint.toml discovery")
	lintCmd.Flags().Bool("no-hints", false, "omit hint lines from output")
	lintCmd.Flags().Bool("no-excerpt", false, "omit source excerpts from pretty output")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runLint executes the "lint" command: it merges denolint.toml with the
// command flags, lints the provided path (single file or directory),
// formats the results in the chosen output format, and exits with a
// non-zero status when any diagnostics or plugin failures exist.
func runLint(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return fmt.Errorf("failed to get no-config flag: %w", err)
	}

	noHints, err := cmd.Flags().GetBool("no-hints")
	if err != nil {
		return fmt.Errorf("failed to get no-hints flag: %w", err)
	}

	noExcerpt, err := cmd.Flags().GetBool("no-excerpt")
	if err != nil {
		return fmt.Errorf("failed to get no-excerpt flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	st, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	configStart := inputPath
	if !st.IsDir() {
		configStart = filepath.Dir(inputPath)
	}
	opts, err := buildDriverOptions(cmd, configStart, noConfig)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:       useColor(colorFlag, os.Stdout),
		PathMode:    pathMode,
		ShowHints:   !noHints,
		ShowExcerpt: !noExcerpt,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		Max:              maxDiagnostics,
		IncludeHints:     !noHints,
	}

	started := time.Now()

	var (
		exitCode  int
		resultErr error
	)
	if st.IsDir() {
		exitCode, resultErr = lintDirToStdout(cmd, inputPath, opts, format, prettyOpts, jsonOpts, quiet)
	} else {
		exitCode, resultErr = lintFileToStdout(cmd, inputPath, opts, format, prettyOpts, jsonOpts, quiet)
	}

	if showTimings {
		fmt.Fprintf(os.Stderr, "lint took %s\n", time.Since(started).Round(time.Millisecond))
	}

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Suppress cobra usage output on lint findings
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// buildDriverOptions merges denolint.toml (when present and not disabled)
// with the command-line flags. A flag the user set always wins over the
// manifest.
func buildDriverOptions(cmd *cobra.Command, startDir string, noConfig bool) (driver.Options, error) {
	var opts driver.Options

	useCache := false
	if !noConfig {
		cfg, ok, err := config.Discover(startDir)
		if err != nil {
			return opts, err
		}
		if ok {
			opts.Rules = cfg.Lint.Rules
			opts.Runner = cfg.Lint.Runner
			opts.Jobs = cfg.Lint.Jobs
			useCache = cfg.Lint.Cache
			for _, p := range cfg.Lint.Plugins {
				opts.Plugins = append(opts.Plugins, plugin.Descriptor{Path: p})
			}
		}
	}

	if cmd.Flags().Changed("rule") {
		opts.Rules, _ = cmd.Flags().GetStringSlice("rule")
	}
	if cmd.Flags().Changed("runner") {
		opts.Runner, _ = cmd.Flags().GetStringSlice("runner")
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if cmd.Flags().Changed("plugin") {
		paths, _ := cmd.Flags().GetStringSlice("plugin")
		opts.Plugins = nil
		for _, p := range paths {
			opts.Plugins = append(opts.Plugins, plugin.Descriptor{Path: p})
		}
	}
	if cmd.Flags().Changed("cache") {
		useCache, _ = cmd.Flags().GetBool("cache")
	}

	if useCache {
		cache, err := driver.OpenDiskCache("denolint")
		if err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func lintFileToStdout(cmd *cobra.Command, path string, opts driver.Options, format string, prettyOpts diagfmt.PrettyOpts, jsonOpts diagfmt.JSONOpts, quiet bool) (int, error) {
	fs, result, err := driver.LintFile(cmd.Context(), path, opts)
	if err != nil {
		return 0, fmt.Errorf("lint failed: %w", err)
	}

	reportFailures(result, quiet)

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, fs, result.FileID, result.Diagnostics, prettyOpts)
	case "json":
		if err := diagfmt.JSON(os.Stdout, fs, result.FileID, result.Diagnostics, jsonOpts); err != nil {
			return 0, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if len(result.Diagnostics) > 0 || len(result.Failures) > 0 {
		return 1, nil
	}
	return 0, nil
}

func lintDirToStdout(cmd *cobra.Command, dir string, opts driver.Options, format string, prettyOpts diagfmt.PrettyOpts, jsonOpts diagfmt.JSONOpts, quiet bool) (int, error) {
	fs, results, err := driver.LintDir(cmd.Context(), dir, opts)
	if err != nil {
		return 0, fmt.Errorf("lint failed: %w", err)
	}

	exit := 0
	for _, r := range results {
		if r.Err != nil || len(r.Diagnostics) > 0 || len(r.Failures) > 0 {
			exit = 1
			break
		}
	}

	switch format {
	case "pretty":
		printed := 0
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				continue
			}
			reportFailures(r, quiet)
			if len(r.Diagnostics) == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(os.Stdout)
			}
			printed++
			diagfmt.Pretty(os.Stdout, fs, r.FileID, r.Diagnostics, prettyOpts)
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
				continue
			}
			reportFailures(r, quiet)
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(fs, r.FileID, r.Diagnostics, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}

	return exit, nil
}

// reportFailures prints plugin faults to stderr. The run itself survives
// them, so they never go to stdout where they would corrupt JSON output.
func reportFailures(r driver.FileResult, quiet bool) {
	if quiet {
		return
	}
	for _, f := range r.Failures {
		fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, f)
	}
}
