package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PgxDatabase executes statements through pgx. Parameter references must use
// the "@name" form.
type PgxDatabase struct {
	db   Querier
	opts options
}

func NewPgxDatabase(db Querier, opts ...Option) *PgxDatabase {
	return &PgxDatabase{db: db, opts: newOptions(opts)}
}

// Query executes a statement that returns rows.
func (p *PgxDatabase) Query(ctx context.Context, st Statement) (Rows, error) {
	if err := st.Err(); err != nil {
		return nil, err
	}
	sql, args := st.SQL(), pgx.NamedArgs(st.Params().Map())

	started := time.Now()
	rows, err := p.db.Query(ctx, sql, args)
	p.opts.logStatement("query", "pgx", sql, len(args), started, err)
	if err != nil {
		return nil, err
	}
	return &PgxRows{rows: rows}, nil
}

// Exec executes a statement without returning rows.
func (p *PgxDatabase) Exec(ctx context.Context, st Statement) (Result, error) {
	if err := st.Err(); err != nil {
		return nil, err
	}
	sql, args := st.SQL(), pgx.NamedArgs(st.Params().Map())

	started := time.Now()
	tag, err := p.db.Exec(ctx, sql, args)
	p.opts.logStatement("exec", "pgx", sql, len(args), started, err)
	if err != nil {
		return nil, err
	}
	return &PgxResult{cmdTag: tag}, nil
}

// PgxRows implements Rows for pgx.Rows.
type PgxRows struct {
	rows pgx.Rows
}

func (p *PgxRows) Next() bool { return p.rows.Next() }

func (p *PgxRows) Scan(dest ...any) error { return p.rows.Scan(dest...) }

func (p *PgxRows) Close() error { p.rows.Close(); return nil }

func (p *PgxRows) Err() error { return p.rows.Err() }

// Columns returns the column names.
func (p *PgxRows) Columns() ([]string, error) {
	fields := p.rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = fd.Name
	}
	return columns, nil
}

// Values returns the values for the current row.
func (p *PgxRows) Values() ([]any, error) {
	return p.rows.Values()
}

// PgxResult implements Result for pgx command tags.
type PgxResult struct {
	cmdTag pgconn.CommandTag
}

// RowsAffected returns the number of rows affected by the command.
func (r *PgxResult) RowsAffected() (int64, error) {
	return r.cmdTag.RowsAffected(), nil
}

// LastInsertId is not supported in PostgreSQL; use RETURNING.
func (r *PgxResult) LastInsertId() (int64, error) {
	return 0, errors.New("database: LastInsertId not supported by pgx")
}

var _ Rows = (*PgxRows)(nil)
