package engine

import (
	"testing"

	"avdesign-hq/meridian/pkg/standards"
)

func failedEval(ruleID string, aspect standards.RuleAspect, field string) EvaluatedRule {
	return EvaluatedRule{
		Rule: &standards.Rule{ID: ruleID, Name: "rule " + ruleID, Aspect: aspect},
		Outcome: Outcome{
			Matched: false,
			Message: field + " out of range",
			Field:   field,
		},
	}
}

func TestAggregateBucketsBySeverity(t *testing.T) {
	evaluated := []EvaluatedRule{
		failedEval("r-1", standards.AspectPlacement, "room.area"),
		failedEval("r-2", standards.AspectCabling, "cable.length"),
		failedEval("r-3", standards.AspectCommercial, "budget.total"),
	}

	result := Aggregate(evaluated, nil)
	if result.IsValid {
		t.Error("error-level issue must invalidate the result")
	}
	if len(result.Errors) != 1 || len(result.Warnings) != 1 || len(result.Suggestions) != 1 {
		t.Fatalf("buckets = %d/%d/%d, want 1/1/1",
			len(result.Errors), len(result.Warnings), len(result.Suggestions))
	}
}

func TestAggregateWarningsDoNotInvalidate(t *testing.T) {
	evaluated := []EvaluatedRule{
		failedEval("r-1", standards.AspectQuantities, "mic.count"),
		failedEval("r-2", standards.AspectCommercial, "budget.total"),
	}
	result := Aggregate(evaluated, nil)
	if !result.IsValid {
		t.Error("warnings and suggestions never block")
	}
}

func TestAggregateDedupKeepsHighestSeverity(t *testing.T) {
	// Same rule id, equipment, and field reported twice with different
	// severities: the error must survive, the suggestion must not.
	policy := func(rule *standards.Rule, outcome Outcome) Severity {
		if rule.Priority > 50 {
			return SeverityError
		}
		return SeveritySuggestion
	}

	low := failedEval("r-1", standards.AspectConfiguration, "display.size")
	low.Rule.Priority = 10
	high := failedEval("r-1", standards.AspectConfiguration, "display.size")
	high.Rule.Priority = 90

	result := Aggregate([]EvaluatedRule{low, high}, policy)
	total := len(result.Errors) + len(result.Warnings) + len(result.Suggestions)
	if total != 1 {
		t.Fatalf("duplicates must collapse to one issue, got %d", total)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("the higher severity must win: %+v", result)
	}
}

func TestAggregateSeparateTargetsNotDeduped(t *testing.T) {
	a := failedEval("r-1", standards.AspectConfiguration, "size")
	a.Target = &PlacedEquipment{ID: "eq-1"}
	b := failedEval("r-1", standards.AspectConfiguration, "size")
	b.Target = &PlacedEquipment{ID: "eq-2"}

	result := Aggregate([]EvaluatedRule{a, b}, nil)
	if len(result.Errors) != 2 {
		t.Fatalf("distinct equipment targets are distinct issues, got %d", len(result.Errors))
	}
}

func TestAggregateSortedOutput(t *testing.T) {
	evaluated := []EvaluatedRule{
		failedEval("r-c", standards.AspectPlacement, "f"),
		failedEval("r-a", standards.AspectPlacement, "f"),
		failedEval("r-b", standards.AspectPlacement, "f"),
	}
	result := Aggregate(evaluated, nil)
	if len(result.Errors) != 3 {
		t.Fatalf("got %d errors", len(result.Errors))
	}
	for i, want := range []string{"r-a", "r-b", "r-c"} {
		if result.Errors[i].RuleID != want {
			t.Fatalf("order = %+v", result.Errors)
		}
	}
}

func TestAggregateMatchedProducesNothing(t *testing.T) {
	evaluated := []EvaluatedRule{
		{
			Rule:    &standards.Rule{ID: "r-ok", Aspect: standards.AspectPlacement},
			Outcome: Outcome{Matched: true},
		},
	}
	result := Aggregate(evaluated, nil)
	if !result.IsValid || len(result.AllIssues()) != 0 {
		t.Fatalf("matched outcomes produce no issues: %+v", result)
	}
	if result.EvaluatedRules != 1 {
		t.Errorf("EvaluatedRules = %d", result.EvaluatedRules)
	}
}
