package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/galatic-association/Dapper/dialect"
)

// Conn is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SqlDatabase executes statements through database/sql, binding parameters to
// the placeholders of its dialect.
type SqlDatabase struct {
	db      Conn
	dialect dialect.Dialect
	opts    options
}

func NewSqlDatabase(db Conn, d dialect.Dialect, opts ...Option) *SqlDatabase {
	return &SqlDatabase{db: db, dialect: d, opts: newOptions(opts)}
}

// Dialect returns the dialect used for binding.
func (s *SqlDatabase) Dialect() dialect.Dialect { return s.dialect }

// Query executes a statement that returns rows.
func (s *SqlDatabase) Query(ctx context.Context, st Statement) (Rows, error) {
	query, args, err := st.Bind(s.dialect)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	s.opts.logStatement("query", s.dialect.Name(), query, len(args), started, err)
	if err != nil {
		return nil, err
	}
	return &SqlRows{rows: rows}, nil
}

// Exec executes a statement without returning rows.
func (s *SqlDatabase) Exec(ctx context.Context, st Statement) (Result, error) {
	query, args, err := st.Bind(s.dialect)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	s.opts.logStatement("exec", s.dialect.Name(), query, len(args), started, err)
	if err != nil {
		return nil, err
	}
	return res, nil // sql.Result implements Result
}

// SqlRows implements Rows for *sql.Rows.
type SqlRows struct {
	rows *sql.Rows
}

func (s *SqlRows) Next() bool { return s.rows.Next() }

func (s *SqlRows) Scan(dest ...any) error { return s.rows.Scan(dest...) }

func (s *SqlRows) Close() error { return s.rows.Close() }

func (s *SqlRows) Err() error { return s.rows.Err() }

func (s *SqlRows) Columns() ([]string, error) { return s.rows.Columns() }

var _ Rows = (*SqlRows)(nil)
