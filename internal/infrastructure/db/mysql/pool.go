// Package mysql owns the relational data access layer: the connection pool
// lifecycle, the parameterized query executor, and the SQL repositories.
package mysql

import (
	"context"
	"database/sql"
	"net"
	"strconv"
	"sync"
	"time"

	gosql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/prospectius/crm-backend/internal/core/domain"
)

const (
	defaultMaxRetries  = 3
	defaultMaxPoolSize = 10
	defaultBackoff     = 5 * time.Second
	pingTimeout        = 10 * time.Second
)

// Config captures the settings required to establish the pool.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// MaxRetries bounds connection attempts; 0 means the default of 3.
	MaxRetries int
	// MaxPoolSize bounds concurrent connections; 0 means the default of 10.
	MaxPoolSize int
	// Backoff is the fixed wait between attempts; 0 means the default of 5s.
	Backoff time.Duration
}

// Pool wraps the process-wide *sql.DB handle. Exactly one Pool is created at
// startup and torn down once at exit; it is threaded through constructors,
// never held in a package variable.
type Pool struct {
	mu  sync.Mutex
	db  *sql.DB
	log zerolog.Logger
}

type options struct {
	open  func(dsn string) (*sql.DB, error)
	sleep func(time.Duration)
}

// Option customizes pool establishment. Used by tests to count attempts and
// skip real backoff waits.
type Option func(*options)

// WithOpener replaces the function that opens and pings the database.
func WithOpener(open func(dsn string) (*sql.DB, error)) Option {
	return func(o *options) { o.open = open }
}

// WithSleep replaces the backoff wait.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

// Connect establishes the connection pool with bounded retries. Each failed
// attempt is logged and followed by a fixed backoff wait; once the attempts
// are exhausted a connectivity fault is returned and the caller must not
// proceed. Connections run in autocommit mode; explicit transactions are
// opened only by the repositories that need multi-statement writes.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger, opts ...Option) (*Pool, error) {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	maxPoolSize := cfg.MaxPoolSize
	if maxPoolSize <= 0 {
		maxPoolSize = defaultMaxPoolSize
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	o := options{sleep: time.Sleep}
	o.open = func(dsn string) (*sql.DB, error) {
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(maxPoolSize)
		db.SetMaxIdleConns(maxPoolSize)
		db.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}
	for _, opt := range opts {
		opt(&o)
	}

	dsn := buildDSN(cfg)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err := o.open(dsn)
		if err == nil {
			log.Info().
				Str("host", cfg.Host).
				Str("database", cfg.Database).
				Int("max_pool_size", maxPoolSize).
				Msg("database connection pool established")
			return &Pool{db: db, log: log}, nil
		}

		lastErr = err
		log.Error().Err(err).Int("attempt", attempt).Int("max_retries", maxRetries).Msg("database connection failed")
		if attempt < maxRetries {
			log.Info().Dur("backoff", backoff).Msg("retrying database connection")
			o.sleep(backoff)
		}
	}

	return nil, domain.Connectivityf(lastErr, "unable to connect to database after %d attempts", maxRetries)
}

// buildDSN assembles the driver DSN. ParseTime makes DATETIME columns scan
// into time.Time.
func buildDSN(cfg Config) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	mc := gosql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// DB returns the underlying handle, or a configuration fault when the pool
// was never established or has been shut down.
func (p *Pool) DB() (*sql.DB, error) {
	if p == nil {
		return nil, domain.ErrNotConfigured
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil, domain.ErrNotConfigured
	}
	return p.db, nil
}

// Ping verifies connectivity, used by the readiness probe.
func (p *Pool) Ping(ctx context.Context) error {
	db, err := p.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// WithinTx runs fn inside an explicit transaction, committing on nil and
// rolling back otherwise. Driver errors are classified into faults.
func (p *Pool) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := p.DB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return classifyErr(err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return classifyErr(err)
	}
	if err := tx.Commit(); err != nil {
		return classifyErr(err)
	}
	return nil
}

// Shutdown closes the pool. Idle connections are closed immediately and
// in-flight ones are waited out by database/sql. Safe to call repeatedly or
// on a pool that never connected.
func (p *Pool) Shutdown() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	p.log.Info().Msg("closing database connection pool")
	err := p.db.Close()
	p.db = nil
	return err
}
