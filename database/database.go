// Package database runs resolved templates against a connection.
//
// PgxDatabase hands the named parameters to pgx as pgx.NamedArgs. SqlDatabase
// binds them to positional placeholders of a dialect first, so it works with
// any database/sql driver.
package database

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/galatic-association/Dapper/dialect"
	"github.com/galatic-association/Dapper/params"
)

// Statement is a resolved SQL text with its parameters. *builder.Template
// implements it.
type Statement interface {
	SQL() string
	Params() *params.Bag
	Bind(d dialect.Dialect) (string, []any, error)
	Err() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
}

type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger logs every statement at debug level and failures at error level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) logStatement(op, dialectName, sql string, args int, started time.Time, err error) {
	ev := o.log.Debug()
	if err != nil {
		ev = o.log.Error().Err(err)
	}
	ev.Str("op", op).
		Str("dialect", dialectName).
		Str("sql", sql).
		Int("params", args).
		Dur("elapsed", time.Since(started)).
		Msg("statement")
}
