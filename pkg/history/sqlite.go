package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"avdesign-hq/meridian/pkg/standards"
)

// SQLiteStorage implements Storage on a local SQLite database. It is
// separate from the standards database so pruning validation history
// never touches the standards library file.
type SQLiteStorage struct {
	db *sql.DB
}

// SQLiteStorageConfig configures the SQLite history store.
type SQLiteStorageConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

const historySchema = `
CREATE TABLE IF NOT EXISTS validation_passes (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    room_id TEXT,
    dimensions TEXT NOT NULL,
    is_valid INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    warning_count INTEGER NOT NULL,
    suggestion_count INTEGER NOT NULL,
    evaluated_rules INTEGER NOT NULL,
    skipped_rules INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_passes_recorded ON validation_passes(recorded_at);
CREATE INDEX IF NOT EXISTS idx_passes_project ON validation_passes(project_id, room_id);
`

// NewSQLiteStorage opens (or creates) the history database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return NewSQLiteStorageWithConfig(SQLiteStorageConfig{DBPath: dbPath})
}

// NewSQLiteStorageWithConfig opens the history database with custom
// configuration.
func NewSQLiteStorageWithConfig(cfg SQLiteStorageConfig) (*SQLiteStorage, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Store persists one record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	dims, err := json.Marshal(record.Dimensions)
	if err != nil {
		return fmt.Errorf("encode dimensions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO validation_passes
			(id, project_id, room_id, dimensions, is_valid,
			 error_count, warning_count, suggestion_count,
			 evaluated_rules, skipped_rules, duration_ns, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ProjectID, record.RoomID, string(dims),
		boolToInt(record.IsValid),
		record.ErrorCount, record.WarningCount, record.SuggestionCount,
		record.EvaluatedRules, record.SkippedRules,
		record.Duration.Nanoseconds(), record.RecordedAt)
	if err != nil {
		return fmt.Errorf("store history record %s: %w", record.ID, err)
	}
	return nil
}

// Query returns matching records, newest first, honoring Limit.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	where, args := buildWhere(query)
	q := `SELECT id, project_id, room_id, dimensions, is_valid,
	             error_count, warning_count, suggestion_count,
	             evaluated_rules, skipped_rules, duration_ns, recorded_at
	      FROM validation_passes` + where + ` ORDER BY recorded_at DESC`
	if query != nil && query.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Count returns the number of matching records.
func (s *SQLiteStorage) Count(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhere(query)
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM validation_passes`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Delete removes matching records.
func (s *SQLiteStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhere(query)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM validation_passes`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error { return s.db.Close() }

func buildWhere(query *Query) (string, []interface{}) {
	if query == nil {
		return "", nil
	}
	var conds []string
	var args []interface{}
	if query.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, query.ProjectID)
	}
	if query.RoomID != "" {
		conds = append(conds, "room_id = ?")
		args = append(args, query.RoomID)
	}
	if query.StartTime != nil {
		conds = append(conds, "recorded_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conds = append(conds, "recorded_at <= ?")
		args = append(args, *query.EndTime)
	}
	if query.OnlyInvalid {
		conds = append(conds, "is_valid = 0")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var record Record
	var projectID, roomID sql.NullString
	var dims string
	var isValid int
	var durationNS int64
	err := rows.Scan(&record.ID, &projectID, &roomID, &dims, &isValid,
		&record.ErrorCount, &record.WarningCount, &record.SuggestionCount,
		&record.EvaluatedRules, &record.SkippedRules,
		&durationNS, &record.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("scan history record: %w", err)
	}
	record.ProjectID = projectID.String
	record.RoomID = roomID.String
	record.IsValid = isValid != 0
	record.Duration = time.Duration(durationNS)
	record.Dimensions = standards.Dimensions{}
	if err := json.Unmarshal([]byte(dims), &record.Dimensions); err != nil {
		return nil, fmt.Errorf("decode dimensions of record %s: %w", record.ID, err)
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
