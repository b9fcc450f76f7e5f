package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"avdesign-hq/meridian/pkg/standards/parser"
	"avdesign-hq/meridian/pkg/standards/validator"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate standards files",
	Long: `Validate standards YAML files for syntax and structural errors.

The lint command parses standards files and performs validation:
  - YAML syntax validation
  - Node hierarchy validation (kinds, parent links, cycles)
  - Rule structure validation (aspects, expression types, conditions)

Examples:
  # Lint a single file
  meridian lint --file standards/conference.yaml

  # Lint a directory
  meridian lint --dir standards/

  # JSON output for CI
  meridian lint --file standards/conference.yaml --format json`,
	RunE: lintStandards,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "standards file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of standards files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintStandards(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list standards files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no standards files found")
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		return lintOutputJSON(results)
	}
	return lintOutputText(results)
}

// LintResult represents the validation result for a single file.
type LintResult struct {
	File   string      `json:"file"`
	Valid  bool        `json:"valid"`
	Errors []LintError `json:"errors,omitempty"`

	Nodes     int `json:"nodes"`
	Standards int `json:"standards"`
	Rules     int `json:"rules"`
}

// LintError represents a single validation error.
type LintError struct {
	Subject    string `json:"subject,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	doc, err := parser.NewParser().Parse(path)
	if err != nil {
		result.Valid = false
		var list *validator.ErrorList
		var single *validator.Error
		switch {
		case errors.As(err, &list):
			for _, e := range list.Errors {
				result.Errors = append(result.Errors, LintError{
					Subject:    e.Subject,
					Message:    e.Message,
					Suggestion: e.Suggestion,
				})
			}
		case errors.As(err, &single):
			result.Errors = append(result.Errors, LintError{
				Subject:    single.Subject,
				Message:    single.Message,
				Suggestion: single.Suggestion,
			})
		default:
			result.Errors = append(result.Errors, LintError{Message: err.Error()})
		}
		return result
	}

	result.Nodes = len(doc.Nodes)
	result.Standards = len(doc.Standards)
	for _, std := range doc.Standards {
		result.Rules += len(std.Rules)
	}
	return result
}

func lintOutputText(results []LintResult) error {
	totalErrors := 0
	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Printf("✓ %d nodes, %d standards, %d rules\n",
				result.Nodes, result.Standards, result.Rules)
			continue
		}
		for _, e := range result.Errors {
			totalErrors++
			if e.Subject != "" {
				fmt.Printf("✗ %s: %s", e.Subject, e.Message)
			} else {
				fmt.Printf("✗ %s", e.Message)
			}
			if e.Suggestion != "" {
				fmt.Printf(" (%s)", e.Suggestion)
			}
			fmt.Println()
		}
	}

	if totalErrors > 0 {
		return fmt.Errorf("validation failed with %d errors", totalErrors)
	}
	fmt.Printf("All %d file(s) valid\n", len(results))
	return nil
}

func lintOutputJSON(results []LintResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}
	for _, result := range results {
		if !result.Valid {
			return fmt.Errorf("validation failed")
		}
	}
	return nil
}
