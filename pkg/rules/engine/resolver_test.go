package engine

import (
	"testing"
	"time"

	"avdesign-hq/meridian/pkg/standards"
)

func overrideRule(id string, dim standards.RuleDimension, priority int, updated time.Time) *standards.Rule {
	return &standards.Rule{
		ID:             id,
		Name:           "rule " + id,
		Aspect:         standards.AspectConfiguration,
		ExpressionType: standards.ExpressionConstraint,
		Expression:     "room.area >= 1",
		Conditions: []standards.RuleCondition{{
			Dimension: dim,
			Operator:  standards.OperatorEquals,
			Value:     standards.StringValue("x"),
		}},
		Priority:  priority,
		IsActive:  true,
		UpdatedAt: updated,
	}
}

func TestSelectWinnerOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		rules []*standards.Rule
		want  string
	}{
		{
			name: "dimension priority beats numeric priority",
			rules: []*standards.Rule{
				overrideRule("r-tier", standards.DimensionTier, 100, base),
				overrideRule("r-client", standards.DimensionClient, 1, base),
			},
			want: "r-client",
		},
		{
			name: "numeric priority breaks dimension tie",
			rules: []*standards.Rule{
				overrideRule("r-low", standards.DimensionTier, 30, base),
				overrideRule("r-high", standards.DimensionTier, 70, base),
			},
			want: "r-high",
		},
		{
			name: "later update breaks priority tie",
			rules: []*standards.Rule{
				overrideRule("r-old", standards.DimensionTier, 50, base),
				overrideRule("r-new", standards.DimensionTier, 50, base.Add(time.Hour)),
			},
			want: "r-new",
		},
		{
			name: "ascending id breaks full tie",
			rules: []*standards.Rule{
				overrideRule("r-b", standards.DimensionTier, 50, base),
				overrideRule("r-a", standards.DimensionTier, 50, base),
			},
			want: "r-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectWinner(tt.rules); got.ID != tt.want {
				t.Errorf("selectWinner() = %s, want %s", got.ID, tt.want)
			}
			// Input order must not matter.
			reversed := []*standards.Rule{tt.rules[1], tt.rules[0]}
			if got := selectWinner(reversed); got.ID != tt.want {
				t.Errorf("selectWinner(reversed) = %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestResolveAdditiveKeepsAll(t *testing.T) {
	a := overrideRule("r-a", standards.DimensionTier, 50, time.Time{})
	a.Aspect = standards.AspectQuantities
	b := overrideRule("r-b", standards.DimensionClient, 10, time.Time{})
	b.Aspect = standards.AspectQuantities

	groups := NewResolver(nil).Resolve([]*standards.Rule{b, a}, &DesignContext{})
	key := GroupKey{Aspect: standards.AspectQuantities}
	got := groups[key]
	if len(got) != 2 {
		t.Fatalf("additive group kept %d rules, want 2", len(got))
	}
	if got[0].ID != "r-a" || got[1].ID != "r-b" {
		t.Errorf("additive group order = %s, %s; want r-a, r-b", got[0].ID, got[1].ID)
	}
}

func TestResolveOverrideReducesToWinner(t *testing.T) {
	loser := overrideRule("r-room", standards.DimensionRoomType, 90, time.Time{})
	winner := overrideRule("r-use", standards.DimensionUseCase, 10, time.Time{})

	groups := NewResolver(nil).Resolve([]*standards.Rule{loser, winner}, &DesignContext{})
	got := groups[GroupKey{Aspect: standards.AspectConfiguration}]
	if len(got) != 1 || got[0].ID != "r-use" {
		t.Fatalf("override group = %+v, want only r-use", got)
	}
}

func TestResolveSeparatesAspects(t *testing.T) {
	cfg := overrideRule("r-cfg", standards.DimensionTier, 50, time.Time{})
	place := overrideRule("r-place", standards.DimensionTier, 50, time.Time{})
	place.Aspect = standards.AspectPlacement

	groups := NewResolver(nil).Resolve([]*standards.Rule{cfg, place}, &DesignContext{})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestResolveEquipmentTargets(t *testing.T) {
	rule := overrideRule("r-disp", standards.DimensionTier, 50, time.Time{})
	rule.EquipmentType = "display"

	design := &DesignContext{Equipment: []*PlacedEquipment{
		{ID: "eq-1", Type: "display"},
		{ID: "eq-2", Type: "camera"},
		{ID: "eq-3", Type: "display"},
	}}

	groups := NewResolver(nil).Resolve([]*standards.Rule{rule}, design)
	if len(groups) != 2 {
		t.Fatalf("expected one group per display, got %d", len(groups))
	}
	for _, id := range []string{"eq-1", "eq-3"} {
		if _, ok := groups[GroupKey{Aspect: standards.AspectConfiguration, TargetID: id}]; !ok {
			t.Errorf("missing group for %s", id)
		}
	}
}

func TestSortedGroupKeysDeterministic(t *testing.T) {
	groups := map[GroupKey][]*standards.Rule{
		{Aspect: standards.AspectQuantities}:                     nil,
		{Aspect: standards.AspectCabling}:                        nil,
		{Aspect: standards.AspectCabling, TargetID: "eq-2"}:      nil,
		{Aspect: standards.AspectCabling, TargetID: "eq-1"}:      nil,
		{Aspect: standards.AspectConfiguration, TargetID: "eq"}: nil,
	}
	keys := sortedGroupKeys(groups)
	for i := 1; i < len(keys); i++ {
		prev, cur := keys[i-1], keys[i]
		if prev.Aspect > cur.Aspect || (prev.Aspect == cur.Aspect && prev.TargetID >= cur.TargetID) {
			t.Fatalf("keys not strictly ordered at %d: %+v", i, keys)
		}
	}
}
