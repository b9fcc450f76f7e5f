package engine

import (
	"log/slog"
	"sort"

	"avdesign-hq/meridian/pkg/standards"
)

// Resolver groups matched rules by the design aspect and target they
// govern, and selects the winning rule(s) per group.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a conflict resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve groups the matched rules by (aspect, target) and reduces each
// override-aspect group to its single winner. Additive aspects keep
// every active rule, ordered by id for reproducibility.
//
// Only active rules participate. A rule with an EquipmentType targets
// each placed equipment item of that type; other rules target the room.
func (r *Resolver) Resolve(matched []*standards.Rule, design *DesignContext) map[GroupKey][]*standards.Rule {
	groups := make(map[GroupKey][]*standards.Rule)

	for _, rule := range matched {
		if !rule.IsActive {
			continue
		}
		if rule.EquipmentType != "" {
			for _, eq := range design.EquipmentOfType(rule.EquipmentType) {
				key := GroupKey{Aspect: rule.Aspect, TargetID: eq.ID}
				groups[key] = append(groups[key], rule)
			}
			continue
		}
		key := GroupKey{Aspect: rule.Aspect}
		groups[key] = append(groups[key], rule)
	}

	for key, rules := range groups {
		if key.Aspect.IsOverride() && len(rules) > 1 {
			winner := selectWinner(rules)
			r.logger.Debug("override conflict resolved",
				"aspect", key.Aspect,
				"target", key.TargetID,
				"candidates", len(rules),
				"winner", winner.ID,
			)
			groups[key] = []*standards.Rule{winner}
			continue
		}
		sortRulesByID(groups[key])
	}

	return groups
}

// selectWinner picks the authoritative rule of an override group, in
// order: highest dimension priority among the rule's own conditions,
// then higher numeric priority, then later UpdatedAt, then ascending
// rule id. The id step carries no authoring meaning; it only makes the
// otherwise-undefined tie deterministic and reproducible.
func selectWinner(rules []*standards.Rule) *standards.Rule {
	winner := rules[0]
	for _, rule := range rules[1:] {
		if outranks(rule, winner) {
			winner = rule
		}
	}
	return winner
}

// outranks reports whether a beats b under the override ordering.
func outranks(a, b *standards.Rule) bool {
	ad, bd := a.HighestDimensionPriority(), b.HighestDimensionPriority()
	if ad != bd {
		return ad > bd
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.ID < b.ID
}

func sortRulesByID(rules []*standards.Rule) {
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
}

// sortedGroupKeys returns the group keys in deterministic order.
func sortedGroupKeys(groups map[GroupKey][]*standards.Rule) []GroupKey {
	keys := make([]GroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Aspect != keys[j].Aspect {
			return keys[i].Aspect < keys[j].Aspect
		}
		return keys[i].TargetID < keys[j].TargetID
	})
	return keys
}
