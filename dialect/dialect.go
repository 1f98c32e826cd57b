// Package dialect describes the positional placeholder style of a database.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDialect is returned by ByName for names it does not recognize.
var ErrUnknownDialect = errors.New("dialect: unknown dialect")

type Dialect interface {
	// Name returns the canonical dialect name.
	Name() string
	// Placeholder returns the placeholder for the n-th argument, counting from 1.
	Placeholder(n int) string
}

// ByName picks a Dialect from a dialect or driver name.
//
//	ByName("pgx")       // Postgres
//	ByName("sqlserver") // SQLServer
//	ByName("mysql")     // MySQL
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx", "pg", "lib/pq":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	case "sqlserver", "mssql":
		return NewSQLServerDialect(), nil
	case "oracle", "godror":
		return NewOracleDialect(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}
