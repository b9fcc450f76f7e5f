package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"avdesign-hq/meridian/pkg/config"
	"avdesign-hq/meridian/pkg/history"
	"avdesign-hq/meridian/pkg/rules/engine"
	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/repository"
)

var validateFlags struct {
	design    string
	standards string
	field     string
	projectID string
	roomID    string
	format    string
	trace     bool
	noHistory bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a room design against the standards library",
	Long: `Validate a room design against the standards applicable to its
dimensions.

The design context YAML carries the six dimensions, the room's physical
attributes, placed equipment, and free-form attribute groups. Standards
are resolved by walking the hierarchy with the design's dimensions,
then every matching rule is evaluated. The command exits non-zero when
the design has errors; warnings and suggestions never fail it.

Examples:
  # Validate against a standards directory
  meridian validate --design design.yaml --standards standards/

  # Restrict the result to one field
  meridian validate --design design.yaml --field display.size

  # Verbose pass with evaluation trace
  meridian validate --design design.yaml --trace -v`,
	RunE: validateDesign,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.design, "design", "", "design context YAML file (required)")
	validateCmd.Flags().StringVar(&validateFlags.standards, "standards", "", "standards directory (default from config)")
	validateCmd.Flags().StringVar(&validateFlags.field, "field", "", "restrict issues to one field path")
	validateCmd.Flags().StringVar(&validateFlags.projectID, "project", "", "project id recorded in history")
	validateCmd.Flags().StringVar(&validateFlags.roomID, "room", "", "room id recorded in history")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.trace, "trace", false, "record an evaluation trace")
	validateCmd.Flags().BoolVar(&validateFlags.noHistory, "no-history", false, "skip history recording")
	validateCmd.MarkFlagRequired("design")
}

func validateDesign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	design, err := loadDesign(validateFlags.design)
	if err != nil {
		return err
	}

	stds, err := applicableStandards(cfg, design)
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	var result *engine.ValidationResult
	if validateFlags.field != "" {
		result, err = eng.ValidateField(design, stds, validateFlags.field)
	} else {
		result, err = eng.ValidateDesign(design, stds)
	}
	if err != nil {
		return fmt.Errorf("validation pass failed: %w", err)
	}

	recordHistory(cfg, design, result)

	if validateFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		renderResult(result)
	}

	if !result.IsValid {
		return fmt.Errorf("design has %d error(s)", len(result.Errors))
	}
	return nil
}

// applicableStandards loads the standards library and resolves the
// standards matching the design's dimensions.
func applicableStandards(cfg *config.Config, design *engine.DesignContext) ([]*standards.Standard, error) {
	dir := validateFlags.standards
	var repo repository.Repository
	var err error

	switch {
	case dir != "":
		repo, err = repository.LoadDirectory(dir)
	case cfg.Standards.Source == "sqlite":
		repo, err = repository.NewSQLiteRepository(&repository.SQLiteConfig{
			Path:         cfg.Standards.DatabasePath,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			WALMode:      true,
		})
	default:
		repo, err = repository.LoadDirectory(cfg.Standards.Path)
	}
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return repo.GetApplicableStandards(context.Background(), design.Dimensions)
}

// newEngine builds the validation engine from configuration.
func newEngine(cfg *config.Config) (*engine.Engine, error) {
	engCfg := &engine.Config{
		MaxRulesPerPass: cfg.Engine.MaxRulesPerPass,
		EnableTrace:     cfg.Engine.EnableTrace || validateFlags.trace,
	}
	if len(cfg.Engine.Severity) > 0 {
		overrides := make(map[standards.RuleAspect]engine.Severity, len(cfg.Engine.Severity))
		for aspect, severity := range cfg.Engine.Severity {
			overrides[standards.RuleAspect(aspect)] = engine.Severity(severity)
		}
		engCfg.SeverityPolicy = engine.SeverityPolicyFromOverrides(overrides)
	}
	return engine.NewEngine(engCfg, nil)
}

// recordHistory archives the pass when history is enabled. Recording
// failures are logged by the recorder and never fail the command.
func recordHistory(cfg *config.Config, design *engine.DesignContext, result *engine.ValidationResult) {
	if validateFlags.noHistory || !cfg.History.Enabled {
		return
	}
	storage, err := history.NewSQLiteStorage(cfg.History.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return
	}
	rec := history.NewRecorder(storage, &history.Config{
		Enabled:      true,
		AsyncBuffer:  cfg.History.AsyncBuffer,
		WriteTimeout: cfg.History.WriteTimeout,
	})
	rec.RecordPass(context.Background(), validateFlags.projectID, validateFlags.roomID, design, result)
	rec.Close()
	storage.Close()
}

func renderResult(result *engine.ValidationResult) {
	printIssues := func(label string, issues []engine.ValidationIssue) {
		for _, issue := range issues {
			fmt.Printf("%s [%s] %s", label, issue.RuleID, issue.Message)
			if issue.EquipmentID != "" {
				fmt.Printf(" (equipment %s)", issue.EquipmentID)
			}
			fmt.Println()
			if issue.SuggestedFix != "" {
				fmt.Printf("    fix: %s\n", issue.SuggestedFix)
			}
		}
	}
	printIssues("✗ error:", result.Errors)
	printIssues("! warning:", result.Warnings)
	printIssues("- suggestion:", result.Suggestions)

	fmt.Printf("\n%d evaluated, %d skipped, %d errors, %d warnings, %d suggestions (%s)\n",
		result.EvaluatedRules, result.SkippedRules,
		len(result.Errors), len(result.Warnings), len(result.Suggestions),
		result.Duration.Round(time.Microsecond))

	if result.Trace != nil {
		fmt.Println("\nTrace:")
		for _, step := range result.Trace.Steps {
			fmt.Printf("  %-18s %-20s %s\n", step.Kind, step.RuleID, step.Details)
		}
	}

	if result.IsValid {
		fmt.Println("✓ design is valid")
	}
}
