// Package sqlstore is the relational gateway. The same repositories run on
// MySQL and PostgreSQL through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type Options struct {
	DSN      string
	Timeout  time.Duration
	MaxConns int
}

type Store struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
	log     *zap.Logger
	newID   func() string
	closers []func()
}

// OpenMySQL opens a MySQL database. The DSN needs parseTime=true.
func OpenMySQL(ctx context.Context, opts Options, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("mysql", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(opts.MaxConns)
		db.SetMaxIdleConns(opts.MaxConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	return newStore(ctx, db, MySQL, opts, log, nil)
}

// OpenPostgres builds a pgx pool and exposes it as a *sql.DB.
func OpenPostgres(ctx context.Context, opts Options, log *zap.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	if opts.Timeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = opts.Timeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return newStore(ctx, stdlib.OpenDBFromPool(pool), Postgres, opts, log, []func(){pool.Close})
}

func newStore(ctx context.Context, db *sql.DB, dialect Dialect, opts Options, log *zap.Logger, closers []func()) (*Store, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s := &Store{
		db:      db,
		dialect: dialect,
		timeout: timeout,
		log:     log.With(zap.String("repository", dialect.Name)),
		newID:   newUUID,
		closers: closers,
	}

	if err := s.Ping(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	s.log.Info("Connected to database", zap.String("dialect", dialect.Name))
	return s, nil
}

// EnsureSchema creates the tables and unique constraints when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{s: s}
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{s: s}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	err := s.db.Close()
	for _, c := range s.closers {
		c()
	}
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
