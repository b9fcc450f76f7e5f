package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"avdesign-hq/meridian/pkg/rules/expr"
	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/validator"
)

// Engine runs validation passes. It holds no design or standards state
// of its own: every pass operates only on its arguments, so a single
// Engine is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    *slog.Logger
	matcher   *Matcher
	resolver  *Resolver
	evaluator *Evaluator
}

// NewEngine creates a validation engine.
func NewEngine(config *Config, logger *slog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		config:    config,
		logger:    logger,
		matcher:   NewMatcher(logger),
		resolver:  NewResolver(logger),
		evaluator: NewEvaluator(logger),
	}, nil
}

// ValidateDesign runs a full validation pass: gather the rules of the
// given standards, filter by condition match, resolve conflicts per
// aspect and target, evaluate, and aggregate into a result. The same
// design and standards always produce the same result.
func (e *Engine) ValidateDesign(design *DesignContext, stds []*standards.Standard) (*ValidationResult, error) {
	if design == nil {
		return nil, ErrNilDesign
	}
	start := time.Now()

	var trace *Trace
	if e.config.EnableTrace {
		trace = &Trace{}
	}

	rules := flattenRules(stds)
	if e.config.MaxRulesPerPass > 0 && len(rules) > e.config.MaxRulesPerPass {
		return nil, &TooManyRulesError{Count: len(rules), Max: e.config.MaxRulesPerPass}
	}

	// Structural gate. A malformed rule is skipped with a warning and
	// never reaches the matcher.
	skipped := 0
	sound := rules[:0]
	for _, rule := range rules {
		if err := validator.ValidateRule(rule); err != nil {
			skipped++
			e.config.Metrics.RecordSkip("structural")
			e.logger.Warn("skipping structurally invalid rule",
				"rule_id", rule.ID, "error", err)
			trace.add("structural_reject", rule.ID, err.Error(), 0)
			continue
		}
		sound = append(sound, rule)
	}

	var matched []*standards.Rule
	for _, rule := range sound {
		if e.matcher.Matches(rule, design) {
			matched = append(matched, rule)
			trace.add("match", rule.ID, "conditions satisfied", 0)
		}
	}

	groups := e.resolver.Resolve(matched, design)

	var evaluated []EvaluatedRule
	for _, key := range sortedGroupKeys(groups) {
		var target *PlacedEquipment
		if key.TargetID != "" {
			target = design.EquipmentByID(key.TargetID)
		}
		for _, rule := range groups[key] {
			stepStart := time.Now()
			outcome, err := e.evaluator.Evaluate(rule, design, target)
			if err != nil {
				var parseErr *expr.ParseError
				if errors.As(err, &parseErr) {
					skipped++
					e.config.Metrics.RecordSkip("parse_error")
					e.logger.Warn("skipping rule with unparseable expression",
						"rule_id", rule.ID, "error", parseErr)
					trace.add("skip", rule.ID, parseErr.Error(), time.Since(stepStart))
					continue
				}
				return nil, &EvaluationError{RuleID: rule.ID,
					Message: "expression evaluation failed", Cause: err}
			}
			trace.add("evaluate", rule.ID, outcome.Message, time.Since(stepStart))
			evaluated = append(evaluated, EvaluatedRule{Rule: rule, Target: target, Outcome: outcome})
		}
	}

	result := Aggregate(evaluated, e.config.SeverityPolicy)
	result.SkippedRules = skipped
	result.Duration = time.Since(start)
	if trace != nil {
		trace.TotalTime = result.Duration
		result.Trace = trace
	}
	e.config.Metrics.RecordPass(&result)

	e.logger.Debug("validation pass complete",
		"evaluated", result.EvaluatedRules,
		"skipped", result.SkippedRules,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"suggestions", len(result.Suggestions),
		"duration", result.Duration)

	return &result, nil
}

// ValidateField runs a full pass and keeps only the issues concerning
// the given field path. Real-time editors call this on field change;
// running the full pass keeps cross-field interactions visible.
func (e *Engine) ValidateField(design *DesignContext, stds []*standards.Standard, fieldPath string) (*ValidationResult, error) {
	full, err := e.ValidateDesign(design, stds)
	if err != nil {
		return nil, err
	}

	filtered := &ValidationResult{
		Errors:         filterByField(full.Errors, fieldPath),
		Warnings:       filterByField(full.Warnings, fieldPath),
		Suggestions:    filterByField(full.Suggestions, fieldPath),
		EvaluatedRules: full.EvaluatedRules,
		SkippedRules:   full.SkippedRules,
		Duration:       full.Duration,
		Trace:          full.Trace,
	}
	filtered.IsValid = len(filtered.Errors) == 0
	return filtered, nil
}

func filterByField(issues []ValidationIssue, fieldPath string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range issues {
		if issue.Field == fieldPath {
			out = append(out, issue)
		}
	}
	return out
}

// flattenRules collects the active rules of all standards in input
// order.
func flattenRules(stds []*standards.Standard) []*standards.Rule {
	var out []*standards.Rule
	for _, std := range stds {
		if std == nil {
			continue
		}
		out = append(out, std.ActiveRules()...)
	}
	return out
}
