package history

import (
	"context"
	"testing"
	"time"

	"avdesign-hq/meridian/pkg/standards"
)

func seedRecord(id, projectID, roomID string, valid bool, age time.Duration) *Record {
	return &Record{
		ID:         id,
		ProjectID:  projectID,
		RoomID:     roomID,
		Dimensions: standards.Dimensions{RoomType: "conference_room"},
		IsValid:    valid,
		ErrorCount: map[bool]int{true: 0, false: 2}[valid],
		RecordedAt: time.Now().UTC().Add(-age),
	}
}

func seedStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	records := []*Record{
		seedRecord("r1", "proj-a", "room-1", true, 72*time.Hour),
		seedRecord("r2", "proj-a", "room-1", false, 48*time.Hour),
		seedRecord("r3", "proj-a", "room-2", true, 24*time.Hour),
		seedRecord("r4", "proj-b", "room-9", false, time.Hour),
	}
	for _, r := range records {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store(%s): %v", r.ID, err)
		}
	}
}

func assertIDs(t *testing.T, got []*Record, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestMemoryStorageQuery(t *testing.T) {
	s := NewMemoryStorage()
	seedStorage(t, s)
	ctx := context.Background()

	tests := []struct {
		name  string
		query *Query
		want  []string
	}{
		{"all newest first", &Query{}, []string{"r4", "r3", "r2", "r1"}},
		{"by project", &Query{ProjectID: "proj-a"}, []string{"r3", "r2", "r1"}},
		{"by room", &Query{ProjectID: "proj-a", RoomID: "room-1"}, []string{"r2", "r1"}},
		{"only invalid", &Query{OnlyInvalid: true}, []string{"r4", "r2"}},
		{"limit", &Query{Limit: 2}, []string{"r4", "r3"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Query(ctx, tc.query)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			assertIDs(t, got, tc.want...)
		})
	}
}

func TestMemoryStorageTimeBounds(t *testing.T) {
	s := NewMemoryStorage()
	seedStorage(t, s)
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-36 * time.Hour)
	got, err := s.Query(ctx, &Query{StartTime: &cutoff})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	assertIDs(t, got, "r4", "r3")

	n, err := s.Count(ctx, &Query{EndTime: &cutoff})
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v; want 2", n, err)
	}
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage()
	seedStorage(t, s)
	ctx := context.Background()

	deleted, err := s.Delete(ctx, &Query{ProjectID: "proj-a"})
	if err != nil || deleted != 3 {
		t.Fatalf("Delete = %d, %v; want 3", deleted, err)
	}
	got, _ := s.Query(ctx, &Query{})
	assertIDs(t, got, "r4")
}
