package engine

import "sort"

// issueKey identifies duplicate findings across rules and targets.
type issueKey struct {
	ruleID      string
	equipmentID string
	field       string
}

// Aggregate turns evaluated rules into a ValidationResult. Failed
// outcomes become issues bucketed by severity, duplicates collapse to
// the most severe finding, and the result is valid exactly when no
// error-level issues remain.
func Aggregate(evaluated []EvaluatedRule, policy SeverityPolicy) ValidationResult {
	if policy == nil {
		policy = AspectSeverityPolicy
	}

	type classified struct {
		issue    ValidationIssue
		severity Severity
	}
	seen := make(map[issueKey]classified)
	var order []issueKey

	for _, er := range evaluated {
		if er.Outcome.Matched {
			continue
		}

		issue := ValidationIssue{
			RuleID:       er.Rule.ID,
			RuleName:     er.Rule.Name,
			Message:      er.Outcome.Message,
			Field:        er.Outcome.Field,
			SuggestedFix: er.Outcome.SuggestedFix,
		}
		if er.Target != nil {
			issue.EquipmentID = er.Target.ID
		}
		severity := policy(er.Rule, er.Outcome)
		issue.Severity = severity

		key := issueKey{ruleID: issue.RuleID, equipmentID: issue.EquipmentID, field: issue.Field}
		prev, dup := seen[key]
		if !dup {
			seen[key] = classified{issue: issue, severity: severity}
			order = append(order, key)
			continue
		}
		if severity.rank() > prev.severity.rank() {
			seen[key] = classified{issue: issue, severity: severity}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.ruleID != b.ruleID {
			return a.ruleID < b.ruleID
		}
		if a.equipmentID != b.equipmentID {
			return a.equipmentID < b.equipmentID
		}
		return a.field < b.field
	})

	var result ValidationResult
	for _, key := range order {
		c := seen[key]
		switch c.severity {
		case SeverityError:
			result.Errors = append(result.Errors, c.issue)
		case SeverityWarning:
			result.Warnings = append(result.Warnings, c.issue)
		case SeveritySuggestion:
			result.Suggestions = append(result.Suggestions, c.issue)
		}
	}
	result.EvaluatedRules = len(evaluated)
	result.IsValid = len(result.Errors) == 0
	return result
}
