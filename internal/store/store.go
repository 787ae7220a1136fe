// Package store owns the embedded SQLite fixture database: schema, seed
// rows, and the query/introspection primitives every caller goes through.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrTableNotFound reports an introspection request for a table that does
// not exist in the store.
var ErrTableNotFound = errors.New("table not found")

// Store is a handle on the database file. Every operation opens its own
// connection and closes it before returning; nothing is cached between
// calls, so a Store is safe to share across goroutines.
type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Ensure creates any missing tables and inserts the fixture rows. Re-runs
// are no-ops: creation is IF NOT EXISTS and seeding is INSERT OR IGNORE.
func (s *Store) Ensure(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := ensureSchema(ctx, db); err != nil {
		return err
	}
	return ensureSeed(ctx, db)
}

// QueryResult is a fully materialized result set. Rows hold column name to
// value mappings; Columns preserves the statement's column order.
type QueryResult struct {
	Columns []string
	Rows    []map[string]any
	Count   int
}

// Column describes one table column as reported by the store.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	Default    *string
	PrimaryKey bool
}

// Query executes an arbitrary statement and materializes the result set.
func (s *Store) Query(ctx context.Context, sqlText string, args ...any) (*QueryResult, error) {
	if strings.TrimSpace(sqlText) == "" {
		return nil, fmt.Errorf("sql is required")
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	return queryDB(ctx, db, sqlText, args...)
}

// Tables returns the user table names in name order, excluding SQLite
// internals.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}

// TableColumns returns the column descriptors for one table in declaration
// order. The name is checked against sqlite_master first: the PRAGMA itself
// reports an unknown table as an empty result, which callers cannot tell
// apart from a zero-column table.
func (s *Store) TableColumns(ctx context.Context, table string) ([]Column, error) {
	name := strings.TrimSpace(table)
	if name == "" {
		return nil, fmt.Errorf("table name is required")
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	var stored string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("look up table %q: %w", name, err)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(stored)))
	if err != nil {
		return nil, fmt.Errorf("table info %q: %w", stored, err)
	}
	defer func() { _ = rows.Close() }()

	columns := make([]Column, 0)
	for rows.Next() {
		var (
			cid          int
			colName      string
			colType      string
			notNull      int
			defaultValue sql.NullString
			pk           int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		column := Column{
			Name:       colName,
			Type:       colType,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		}
		if defaultValue.Valid {
			value := defaultValue.String
			column.Default = &value
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column info: %w", err)
	}
	return columns, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", s.path, err)
	}
	// One connection per handle keeps the foreign_keys pragma in force for
	// every statement issued through it.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

func queryDB(ctx context.Context, db *sql.DB, sqlText string, args ...any) (*QueryResult, error) {
	rows, err := db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	result := &QueryResult{Columns: columns, Rows: make([]map[string]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	result.Count = len(result.Rows)
	return result, nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case []byte:
		return string(typed)
	default:
		return typed
	}
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
