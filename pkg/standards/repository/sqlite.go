package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"avdesign-hq/meridian/pkg/standards"
	"avdesign-hq/meridian/pkg/standards/validator"
)

// SQLiteConfig contains configuration for the SQLite repository.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/standards.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteRepository opens (or creates) the standards database and
// initializes its schema.
func NewSQLiteRepository(config *SQLiteConfig) (*SQLiteRepository, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	logger := slog.Default().With("component", "standards.repository.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("open standards database: %w", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	r := &SQLiteRepository{db: db, config: config, logger: logger}
	if err := r.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite standards repository initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return r, nil
}

func (r *SQLiteRepository) initialize() error {
	if r.config.WALMode {
		if _, err := r.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("enable WAL mode: %w", err)
		}
	}
	if _, err := r.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", r.config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := r.db.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := r.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	var version int
	if err := r.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}
	return nil
}

// GetNode returns the node with the given id.
func (r *SQLiteRepository) GetNode(ctx context.Context, id string) (*standards.StandardNode, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, parent_id, kind, name, dimension, value FROM nodes WHERE id = ?`, id)
	node, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id, Err: ErrNodeNotFound}
	}
	return node, err
}

// ListNodes returns every node, ordered by id.
func (r *SQLiteRepository) ListNodes(ctx context.Context) ([]*standards.StandardNode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_id, kind, name, dimension, value FROM nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	var out []*standards.StandardNode
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, rows.Err()
}

// PutNode creates or replaces a node after validating it and checking
// acyclicity against the stored forest.
func (r *SQLiteRepository) PutNode(ctx context.Context, node *standards.StandardNode) error {
	if err := validator.ValidateNode(node); err != nil {
		return err
	}
	existing, err := r.ListNodes(ctx)
	if err != nil {
		return err
	}
	if err := validator.CheckAcyclic(existing, node); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO nodes (id, parent_id, kind, name, dimension, value)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			kind = excluded.kind,
			name = excluded.name,
			dimension = excluded.dimension,
			value = excluded.value`,
		node.ID, node.ParentID, string(node.Kind), node.Name,
		string(node.Dimension), node.Value)
	if err != nil {
		return fmt.Errorf("put node %q: %w", node.ID, err)
	}
	return nil
}

// DeleteNode removes a node unless children or standards still hang
// off it.
func (r *SQLiteRepository) DeleteNode(ctx context.Context, id string) error {
	var inUse int
	err := r.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM nodes WHERE parent_id = ?)
		     + (SELECT COUNT(*) FROM standards WHERE node_id = ?)`, id, id).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("delete node %q: %w", id, err)
	}
	if inUse > 0 {
		return ErrNodeInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete node %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{ID: id, Err: ErrNodeNotFound}
	}
	return nil
}

// GetStandard returns the standard with the given id.
func (r *SQLiteRepository) GetStandard(ctx context.Context, id string) (*standards.Standard, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, node_id, name, description, rules FROM standards WHERE id = ?`, id)
	std, err := scanStandard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id, Err: ErrStandardNotFound}
	}
	return std, err
}

// ListStandards returns every standard, ordered by id.
func (r *SQLiteRepository) ListStandards(ctx context.Context) ([]*standards.Standard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, node_id, name, description, rules FROM standards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list standards: %w", err)
	}
	defer rows.Close()

	var out []*standards.Standard
	for rows.Next() {
		std, err := scanStandard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, std)
	}
	return out, rows.Err()
}

// PutStandard creates or replaces a standard after validating it.
func (r *SQLiteRepository) PutStandard(ctx context.Context, std *standards.Standard) error {
	if err := validator.ValidateStandard(std); err != nil {
		return err
	}
	rules, err := json.Marshal(std.Rules)
	if err != nil {
		return fmt.Errorf("encode rules of standard %q: %w", std.ID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO standards (id, node_id, name, description, rules)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			node_id = excluded.node_id,
			name = excluded.name,
			description = excluded.description,
			rules = excluded.rules`,
		std.ID, std.NodeID, std.Name, std.Description, string(rules))
	if err != nil {
		return fmt.Errorf("put standard %q: %w", std.ID, err)
	}
	return nil
}

// DeleteStandard removes a standard.
func (r *SQLiteRepository) DeleteStandard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM standards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete standard %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{ID: id, Err: ErrStandardNotFound}
	}
	return nil
}

// GetApplicableStandards resolves the standards applicable to the
// given dimensions. The whole forest is loaded for the walk; standards
// libraries are small and local.
func (r *SQLiteRepository) GetApplicableStandards(ctx context.Context, dims standards.Dimensions) ([]*standards.Standard, error) {
	nodes, err := r.ListNodes(ctx)
	if err != nil {
		return nil, err
	}
	stds, err := r.ListStandards(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveApplicable(nodes, stds, dims), nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error { return r.db.Close() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNode(row rowScanner) (*standards.StandardNode, error) {
	var node standards.StandardNode
	var parent, dimension, value sql.NullString
	if err := row.Scan(&node.ID, &parent, (*string)(&node.Kind), &node.Name, &dimension, &value); err != nil {
		return nil, err
	}
	node.ParentID = parent.String
	node.Dimension = standards.RuleDimension(dimension.String)
	node.Value = value.String
	return &node, nil
}

func scanStandard(row rowScanner) (*standards.Standard, error) {
	var std standards.Standard
	var description sql.NullString
	var rules string
	if err := row.Scan(&std.ID, &std.NodeID, &std.Name, &description, &rules); err != nil {
		return nil, err
	}
	std.Description = description.String
	if err := json.Unmarshal([]byte(rules), &std.Rules); err != nil {
		return nil, fmt.Errorf("decode rules of standard %q: %w", std.ID, err)
	}
	return &std, nil
}
