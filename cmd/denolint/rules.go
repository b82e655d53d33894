package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tanquar/deno-lint/internal/rules"
)

var (
	ruleCodeColor = color.New(color.FgCyan, color.Bold)
	ruleTagColor  = color.New(color.FgGreen)
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in lint rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().String("tag", "", "only show rules carrying this tag")
}

type rulePayload struct {
	Code string   `json:"code"`
	Tags []string `json:"tags,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	tag, err := cmd.Flags().GetString("tag")
	if err != nil {
		return fmt.Errorf("failed to get tag flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	var listed []rulePayload
	for _, r := range rules.All() {
		if tag != "" && !hasTag(r.Tags(), tag) {
			continue
		}
		listed = append(listed, rulePayload{Code: r.Code(), Tags: r.Tags()})
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(listed)
	case "pretty":
		colorize := useColor(colorFlag, os.Stdout)
		for _, r := range listed {
			code := r.Code
			tags := strings.Join(r.Tags, ", ")
			if colorize {
				code = ruleCodeColor.Sprint(code)
				tags = ruleTagColor.Sprint(tags)
			}
			if tags == "" {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]\n", code, tags)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
