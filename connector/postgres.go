package connector

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/galatic-association/Dapper/database"
	"github.com/galatic-association/Dapper/dialect"
)

// Pool defaults applied by PoolConfig when the configuration leaves them unset.
const (
	defaultMaxOpen     = 10
	defaultMaxLifetime = time.Hour
	defaultMaxIdleTime = 30 * time.Minute
)

// Stats represents connection pool statistics.
type Stats struct {
	OpenConnections int
	InUse           int
	Idle            int
}

// PostgresConnector is an open PostgreSQL connection pool.
type PostgresConnector struct {
	config  Config
	pool    *pgxpool.Pool
	dialect dialect.Dialect

	mu sync.Mutex
	db *sql.DB // opened on first use, closed with the pool
}

// Connect validates cfg and opens a pool, retrying per cfg.Retry. Retries are
// logged to the zerolog logger carried by ctx, if any.
func Connect(ctx context.Context, cfg Config) (*PostgresConnector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &PostgresConnector{
		config:  cfg,
		dialect: dialect.NewPostgresDialect(),
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if cfg.Retry != nil {
		if err := retryConnect(ctx, cfg.Retry, p.connect); err != nil {
			return nil, fmt.Errorf("connector: failed to connect after %d attempts: %w", cfg.Retry.MaxRetries, err)
		}
		return p, nil
	}
	if err := p.connect(ctx); err != nil {
		return nil, fmt.Errorf("connector: %w", err)
	}
	return p, nil
}

// PoolConfig turns c into a pgxpool configuration without connecting.
func (c *Config) PoolConfig() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(c.DSN())
	if err != nil {
		return nil, err
	}

	pool := c.Pool
	if pool.MaxOpen <= 0 {
		pool.MaxOpen = defaultMaxOpen
	}
	if pool.MaxLifetime == 0 {
		pool.MaxLifetime = defaultMaxLifetime
	}
	if pool.MaxIdleTime == 0 {
		pool.MaxIdleTime = defaultMaxIdleTime
	}

	poolCfg.MaxConns = int32(pool.MaxOpen)
	poolCfg.MinConns = int32(pool.MaxIdle)
	poolCfg.MaxConnLifetime = pool.MaxLifetime
	poolCfg.MaxConnIdleTime = pool.MaxIdleTime
	if pool.HealthCheckFreq > 0 {
		poolCfg.HealthCheckPeriod = pool.HealthCheckFreq
	}
	return poolCfg, nil
}

func (p *PostgresConnector) connect(ctx context.Context) error {
	if p.pool != nil {
		return nil
	}

	poolCfg, err := p.config.PoolConfig()
	if err != nil {
		return err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	p.pool = pool
	return nil
}

// Pool returns the underlying pool.
func (p *PostgresConnector) Pool() *pgxpool.Pool {
	return p.pool
}

// Database returns an executor passing named arguments straight to pgx.
func (p *PostgresConnector) Database(opts ...database.Option) *database.PgxDatabase {
	return database.NewPgxDatabase(p.pool, opts...)
}

// SQL returns a database/sql executor over the same pool, binding parameters
// to $n placeholders.
func (p *PostgresConnector) SQL(opts ...database.Option) *database.SqlDatabase {
	return database.NewSqlDatabase(p.DB(), p.dialect, opts...)
}

// DB returns the *sql.DB backed by the pool. Every call returns the same
// value; Close closes it.
func (p *PostgresConnector) DB() *sql.DB {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		p.db = stdlib.OpenDBFromPool(p.pool)
	}
	return p.db
}

func (p *PostgresConnector) Dialect() dialect.Dialect {
	return p.dialect
}

// Health checks the connection health.
func (p *PostgresConnector) Health(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("connector: not connected")
	}
	return p.pool.Ping(ctx)
}

func (p *PostgresConnector) Stats() Stats {
	if p.pool == nil {
		return Stats{}
	}
	s := p.pool.Stat()
	return Stats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

// Close closes the *sql.DB handed out by DB, then the pool.
func (p *PostgresConnector) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return err
}
