package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorageRoundTrip(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()

	record := seedRecord("r1", "proj-a", "room-1", false, time.Hour)
	record.WarningCount = 3
	record.EvaluatedRules = 12
	record.SkippedRules = 1
	record.Duration = 42 * time.Millisecond
	if err := s.Store(ctx, record); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := s.Query(ctx, &Query{})
	if err != nil || len(got) != 1 {
		t.Fatalf("Query = %d records, %v", len(got), err)
	}
	r := got[0]
	if r.ID != "r1" || r.ProjectID != "proj-a" || r.RoomID != "room-1" {
		t.Errorf("identity fields lost: %+v", r)
	}
	if r.IsValid || r.ErrorCount != 2 || r.WarningCount != 3 {
		t.Errorf("counters lost: %+v", r)
	}
	if r.EvaluatedRules != 12 || r.SkippedRules != 1 || r.Duration != 42*time.Millisecond {
		t.Errorf("pass stats lost: %+v", r)
	}
	if r.Dimensions.RoomType != "conference_room" {
		t.Errorf("dimensions lost: %+v", r.Dimensions)
	}
}

func TestSQLiteStorageFilters(t *testing.T) {
	s := openTestStorage(t)
	seedStorage(t, s)
	ctx := context.Background()

	got, err := s.Query(ctx, &Query{ProjectID: "proj-a", RoomID: "room-1"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	assertIDs(t, got, "r2", "r1")

	got, err = s.Query(ctx, &Query{OnlyInvalid: true, Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	assertIDs(t, got, "r4")

	n, err := s.Count(ctx, &Query{ProjectID: "proj-b"})
	if err != nil || n != 1 {
		t.Errorf("Count = %d, %v; want 1", n, err)
	}
}

func TestSQLiteStorageDeleteByAge(t *testing.T) {
	s := openTestStorage(t)
	seedStorage(t, s)
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-36 * time.Hour)
	deleted, err := s.Delete(ctx, &Query{EndTime: &cutoff})
	if err != nil || deleted != 2 {
		t.Fatalf("Delete = %d, %v; want 2", deleted, err)
	}
	got, _ := s.Query(ctx, &Query{})
	assertIDs(t, got, "r4", "r3")
}

func TestSQLiteStorageEmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Fatal("empty path must be rejected")
	}
}
