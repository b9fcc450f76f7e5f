package history

import (
	"context"
	"fmt"
	"time"

	"avdesign-hq/meridian/pkg/standards"
)

// Record is one archived validation pass.
type Record struct {
	// ID is a generated UUID.
	ID string `json:"id"`

	// ProjectID and RoomID locate the design the pass ran over. Both
	// are caller-supplied and may be empty for ad-hoc CLI runs.
	ProjectID string `json:"project_id,omitempty"`
	RoomID    string `json:"room_id,omitempty"`

	// Dimensions is the design context the pass was scoped to.
	Dimensions standards.Dimensions `json:"dimensions"`

	IsValid         bool `json:"is_valid"`
	ErrorCount      int  `json:"error_count"`
	WarningCount    int  `json:"warning_count"`
	SuggestionCount int  `json:"suggestion_count"`
	EvaluatedRules  int  `json:"evaluated_rules"`
	SkippedRules    int  `json:"skipped_rules"`

	// Duration is how long the pass took.
	Duration time.Duration `json:"duration"`

	RecordedAt time.Time `json:"recorded_at"`
}

// Query filters history records. Nil pointer fields and zero values
// mean "no filter".
type Query struct {
	ProjectID string
	RoomID    string

	// StartTime and EndTime bound RecordedAt inclusively.
	StartTime *time.Time
	EndTime   *time.Time

	// OnlyInvalid restricts to passes that had errors.
	OnlyInvalid bool

	// Limit caps the number of returned records. 0 means unlimited.
	Limit int
}

// Matches reports whether the record passes every filter of the query.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.ProjectID != "" && r.ProjectID != q.ProjectID {
		return false
	}
	if q.RoomID != "" && r.RoomID != q.RoomID {
		return false
	}
	if q.StartTime != nil && r.RecordedAt.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && r.RecordedAt.After(*q.EndTime) {
		return false
	}
	if q.OnlyInvalid && r.IsValid {
		return false
	}
	return true
}

// Storage persists history records. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query returns matching records, newest first, honoring Limit.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of matching records.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes matching records and returns how many went.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases storage resources.
	Close() error
}

// RecorderError wraps a failure to record a pass.
type RecorderError struct {
	RecordID string
	Err      error
}

func (e *RecorderError) Error() string {
	return fmt.Sprintf("history record %s: %v", e.RecordID, e.Err)
}

func (e *RecorderError) Unwrap() error { return e.Err }

// NewRecorderError creates a recorder error for the given record.
func NewRecorderError(recordID string, err error) *RecorderError {
	return &RecorderError{RecordID: recordID, Err: err}
}
