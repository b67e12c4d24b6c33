package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"ArticlesPublisher/internal/domain"
	"ArticlesPublisher/internal/ports"
)

const postedTable = "posted"

// SQLiteLedger records which (country, city, category) combinations were
// already published.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.TaskLedger = (*SQLiteLedger)(nil)

// NewSQLiteLedger wires an existing sql.DB.
func NewSQLiteLedger(db *sql.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

// OpenSQLiteLedger opens the database file at path and creates the schema.
func OpenSQLiteLedger(ctx context.Context, path string) (*SQLiteLedger, error) {
	if path == "" {
		return nil, errors.New("ledger: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger: create dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	ledger := NewSQLiteLedger(db)
	if err := ledger.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ledger, nil
}

// Init creates the posted table if needed.
func (l *SQLiteLedger) Init(ctx context.Context) error {
	if l.db == nil {
		return nil
	}

	query := `CREATE TABLE IF NOT EXISTS posted (
		country TEXT NOT NULL,
		city TEXT NOT NULL,
		category TEXT NOT NULL,
		posted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(country, city, category)
	)`
	if _, err := l.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ledger: create schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (l *SQLiteLedger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// IsPosted reports whether the task was already published.
func (l *SQLiteLedger) IsPosted(ctx context.Context, task domain.Task) (bool, error) {
	if l.db == nil {
		return false, nil
	}

	query, args, err := sq.Select("1").
		From(postedTable).
		Where(sq.Eq{"country": task.Country, "city": task.City, "category": task.Category}).
		Limit(1).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build posted query: %w", err)
	}

	var one int
	err = l.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query posted: %w", err)
	}
	return true, nil
}

// MarkPosted stores the task; repeating it is a no-op.
func (l *SQLiteLedger) MarkPosted(ctx context.Context, task domain.Task) error {
	if l.db == nil {
		return nil
	}

	query, args, err := sq.Insert(postedTable).
		Options("OR IGNORE").
		Columns("country", "city", "category").
		Values(task.Country, task.City, task.Category).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert posted: %w", err)
	}
	return nil
}

// Count returns the number of posted combinations.
func (l *SQLiteLedger) Count(ctx context.Context) (int, error) {
	if l.db == nil {
		return 0, nil
	}

	query, args, err := sq.Select("COUNT(*)").From(postedTable).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posted: %w", err)
	}
	return n, nil
}
