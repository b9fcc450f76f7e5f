package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"avdesign-hq/meridian/pkg/standards"
)

func openTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	config := DefaultSQLiteConfig()
	config.Path = filepath.Join(t.TempDir(), "standards.db")
	repo, err := NewSQLiteRepository(config)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteNodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	node := testNode("conference", "", standards.DimensionRoomType, "conference_room")
	if err := repo.PutNode(ctx, node); err != nil {
		t.Fatalf("PutNode: %v", err)
	}

	got, err := repo.GetNode(ctx, "conference")
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if got.Kind != standards.NodeFolder || got.Dimension != standards.DimensionRoomType || got.Value != "conference_room" {
		t.Errorf("node round trip lost fields: %+v", got)
	}

	// Upsert replaces in place.
	node.Name = "renamed"
	if err := repo.PutNode(ctx, node); err != nil {
		t.Fatalf("PutNode upsert: %v", err)
	}
	got, _ = repo.GetNode(ctx, "conference")
	if got.Name != "renamed" {
		t.Errorf("upsert did not replace, name = %q", got.Name)
	}

	_, err = repo.GetNode(ctx, "ghost")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestSQLiteRejectsCycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	repo.PutNode(ctx, testNode("a", "", "", ""))
	repo.PutNode(ctx, testNode("b", "a", "", ""))
	if err := repo.PutNode(ctx, testNode("a", "b", "", "")); err == nil {
		t.Fatal("cycle-forming write must be rejected")
	}
}

func TestSQLiteDeleteNodeInUse(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	repo.PutNode(ctx, testNode("root", "", "", ""))
	repo.PutNode(ctx, testNode("leaf", "root", "", ""))
	repo.PutStandard(ctx, testStd("std-1", "leaf"))

	if err := repo.DeleteNode(ctx, "root"); !errors.Is(err, ErrNodeInUse) {
		t.Errorf("deleting a parent: err = %v, want ErrNodeInUse", err)
	}
	if err := repo.DeleteNode(ctx, "leaf"); !errors.Is(err, ErrNodeInUse) {
		t.Errorf("deleting a node with standards: err = %v, want ErrNodeInUse", err)
	}
	if err := repo.DeleteNode(ctx, "ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}

	repo.DeleteStandard(ctx, "std-1")
	if err := repo.DeleteNode(ctx, "leaf"); err != nil {
		t.Errorf("deleting a free leaf: %v", err)
	}
}

func TestSQLiteStandardRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	repo.PutNode(ctx, testNode("leaf", "", "", ""))
	std := testStd("std-1", "leaf")
	std.Description = "baseline checks"
	std.Rules[0].Conditions = append(std.Rules[0].Conditions, standards.RuleCondition{
		Dimension: standards.DimensionPlatform,
		Operator:  standards.OperatorIn,
		Value: standards.ListValue(
			standards.StringValue("teams"),
			standards.StringValue("zoom"),
		),
	})
	if err := repo.PutStandard(ctx, std); err != nil {
		t.Fatalf("PutStandard: %v", err)
	}

	got, err := repo.GetStandard(ctx, "std-1")
	if err != nil {
		t.Fatalf("GetStandard: %v", err)
	}
	if got.Description != "baseline checks" || len(got.Rules) != 1 {
		t.Fatalf("standard round trip lost fields: %+v", got)
	}
	rule := got.Rules[0]
	if rule.Expression != "display.size >= 55" || !rule.IsActive {
		t.Errorf("rule fields lost: %+v", rule)
	}
	if len(rule.Conditions) != 2 {
		t.Fatalf("conditions = %d, want 2", len(rule.Conditions))
	}
	in := rule.Conditions[1].Value
	if in.Kind != standards.ValueList || !in.Contains(standards.StringValue("zoom")) {
		t.Errorf("condition list value lost: %+v", in)
	}

	_, err = repo.GetStandard(ctx, "ghost")
	if !errors.Is(err, ErrStandardNotFound) {
		t.Errorf("err = %v, want ErrStandardNotFound", err)
	}
	if err := repo.DeleteStandard(ctx, "ghost"); !errors.Is(err, ErrStandardNotFound) {
		t.Errorf("err = %v, want ErrStandardNotFound", err)
	}
}

func TestSQLiteApplicable(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	repo.PutNode(ctx, testNode("root", "", "", ""))
	repo.PutNode(ctx, testNode("boardroom", "root", standards.DimensionRoomType, "boardroom"))
	repo.PutStandard(ctx, testStd("std-global", "root"))
	repo.PutStandard(ctx, testStd("std-boardroom", "boardroom"))

	got, err := repo.GetApplicableStandards(ctx, standards.Dimensions{RoomType: "boardroom"})
	if err != nil {
		t.Fatalf("GetApplicableStandards: %v", err)
	}
	if len(got) != 2 || got[0].ID != "std-boardroom" || got[1].ID != "std-global" {
		t.Errorf("unexpected resolution: %v", got)
	}

	got, err = repo.GetApplicableStandards(ctx, standards.Dimensions{RoomType: "huddle_room"})
	if err != nil || len(got) != 1 || got[0].ID != "std-global" {
		t.Errorf("mismatched branch resolved: %v, %v", got, err)
	}
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	config := DefaultSQLiteConfig()
	config.Path = filepath.Join(t.TempDir(), "standards.db")

	repo, err := NewSQLiteRepository(config)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	repo.PutNode(ctx, testNode("root", "", "", ""))
	repo.PutStandard(ctx, testStd("std-1", "root"))
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	repo, err = NewSQLiteRepository(config)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()
	if _, err := repo.GetStandard(ctx, "std-1"); err != nil {
		t.Errorf("content lost across reopen: %v", err)
	}
}
