package dialect

import "strconv"

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(int) string { return "?" }

// SQLServer numbers arguments as @p1, @p2, ...
type SQLServer struct{}

func NewSQLServerDialect() Dialect {
	return &SQLServer{}
}

func (SQLServer) Name() string { return "sqlserver" }

func (SQLServer) Placeholder(n int) string { return "@p" + strconv.Itoa(n) }

// Oracle numbers arguments as :1, :2, ...
type Oracle struct{}

func NewOracleDialect() Dialect {
	return &Oracle{}
}

func (Oracle) Name() string { return "oracle" }

func (Oracle) Placeholder(n int) string { return ":" + strconv.Itoa(n) }
