package history

import (
	"context"
	"testing"
	"time"
)

func TestPrunerByAge(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	s.Store(ctx, seedRecord("old-1", "p", "r", true, 100*24*time.Hour))
	s.Store(ctx, seedRecord("old-2", "p", "r", false, 95*24*time.Hour))
	s.Store(ctx, seedRecord("fresh", "p", "r", true, 24*time.Hour))

	p := NewPruner(s, &RetentionConfig{RetentionDays: 90})
	deleted, err := p.Prune(ctx)
	if err != nil || deleted != 2 {
		t.Fatalf("Prune = %d, %v; want 2", deleted, err)
	}

	got, _ := s.Query(ctx, &Query{})
	assertIDs(t, got, "fresh")
}

func TestPrunerByCount(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	for i, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		s.Store(ctx, seedRecord(id, "p", "r", true, time.Duration(5-i)*time.Hour))
	}

	p := NewPruner(s, &RetentionConfig{RetentionDays: 0, MaxRecords: 2})
	deleted, err := p.Prune(ctx)
	if err != nil || deleted != 3 {
		t.Fatalf("Prune = %d, %v; want 3", deleted, err)
	}

	got, _ := s.Query(ctx, &Query{})
	assertIDs(t, got, "r5", "r4")
}

func TestPrunerDisabled(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()
	s.Store(ctx, seedRecord("ancient", "p", "r", true, 365*24*time.Hour))

	p := NewPruner(s, &RetentionConfig{RetentionDays: 0, MaxRecords: 0})
	deleted, err := p.Prune(ctx)
	if err != nil || deleted != 0 {
		t.Fatalf("Prune = %d, %v; want 0", deleted, err)
	}
}

func TestSchedulerInvalidCron(t *testing.T) {
	p := NewPruner(NewMemoryStorage(), &RetentionConfig{PruneSchedule: "not a schedule"})
	if err := p.Start(context.Background()); err == nil {
		t.Fatal("invalid cron expression must be rejected")
	}
}

func TestSchedulerEmptyScheduleIsNoop(t *testing.T) {
	p := NewPruner(NewMemoryStorage(), &RetentionConfig{PruneSchedule: ""})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.scheduler.IsRunning() {
		t.Error("scheduler running without a schedule")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	p := NewPruner(NewMemoryStorage(), &RetentionConfig{PruneSchedule: "0 3 * * *"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.scheduler.IsRunning() {
		t.Fatal("scheduler not running after Start")
	}
	if next := p.NextPruning(); next == nil || !next.After(time.Now()) {
		t.Errorf("NextPruning = %v", next)
	}
	p.Stop()
	if p.scheduler.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}
