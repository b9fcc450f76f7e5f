package standards

import "testing"

func TestDimensionPriorityOrdering(t *testing.T) {
	for i := 1; i < len(AllDimensions); i++ {
		lo, hi := AllDimensions[i-1], AllDimensions[i]
		if lo.Priority() >= hi.Priority() {
			t.Errorf("%s (%d) should rank below %s (%d)",
				lo, lo.Priority(), hi, hi.Priority())
		}
	}
	if standardsUnknown := RuleDimension("vendor"); standardsUnknown.Priority() != 0 {
		t.Error("unknown dimensions rank below all known ones")
	}
}

func TestDimensionsValue(t *testing.T) {
	dims := Dimensions{
		RoomType: "huddle_room",
		Platform: "zoom",
		ClientID: "acme",
	}

	tests := []struct {
		dim  RuleDimension
		want string
		ok   bool
	}{
		{DimensionRoomType, "huddle_room", true},
		{DimensionPlatform, "zoom", true},
		{DimensionClient, "acme", true},
		{DimensionTier, "", false},
		{DimensionEcosystem, "", false},
		{RuleDimension("vendor"), "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dim), func(t *testing.T) {
			got, ok := dims.Value(tt.dim)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Value(%s) = (%q, %v), want (%q, %v)", tt.dim, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRuleHighestDimensionPriority(t *testing.T) {
	rule := &Rule{Conditions: []RuleCondition{
		{Dimension: DimensionRoomType},
		{Dimension: DimensionUseCase},
		{Dimension: DimensionPlatform},
	}}
	if got := rule.HighestDimensionPriority(); got != DimensionUseCase.Priority() {
		t.Errorf("HighestDimensionPriority() = %d, want %d", got, DimensionUseCase.Priority())
	}

	empty := &Rule{}
	if empty.HighestDimensionPriority() != 0 {
		t.Error("no conditions means zero priority")
	}
}

func TestNodeMatchesBinding(t *testing.T) {
	dims := Dimensions{RoomType: "boardroom", Tier: "premium"}

	tests := []struct {
		name string
		node StandardNode
		want bool
	}{
		{
			name: "binding matches",
			node: StandardNode{Kind: NodeFolder, Dimension: DimensionRoomType, Value: "boardroom"},
			want: true,
		},
		{
			name: "binding mismatch",
			node: StandardNode{Kind: NodeFolder, Dimension: DimensionRoomType, Value: "classroom"},
			want: false,
		},
		{
			name: "unset dimension fails closed",
			node: StandardNode{Kind: NodeFolder, Dimension: DimensionClient, Value: "acme"},
			want: false,
		},
		{
			name: "unbound folder always matches",
			node: StandardNode{Kind: NodeFolder, Name: "global"},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.MatchesBinding(dims); got != tt.want {
				t.Errorf("MatchesBinding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStandardActiveRules(t *testing.T) {
	std := &Standard{Rules: []*Rule{
		{ID: "r-1", IsActive: true},
		{ID: "r-2", IsActive: false},
		{ID: "r-3", IsActive: true},
	}}
	active := std.ActiveRules()
	if len(active) != 2 || active[0].ID != "r-1" || active[1].ID != "r-3" {
		t.Errorf("ActiveRules() = %+v", active)
	}
	if std.RuleByID("r-2") == nil || std.RuleByID("r-9") != nil {
		t.Error("RuleByID lookup misbehaves")
	}
}
