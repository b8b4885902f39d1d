// Package postgres is the PostgreSQL birthday store, backed by a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isdelr/birthdaybot-be/internal/config"
	"github.com/isdelr/birthdaybot-be/internal/store"
)

var _ store.Store = (*DB)(nil)

// DB is the pgx implementation of store.Store.
type DB struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// ConnString builds a postgres:// URL from the database settings.
func ConnString(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	return u.String()
}

// New opens a pool sized from cfg and verifies connectivity.
func New(ctx context.Context, cfg config.Database) (*DB, error) {
	return Open(ctx, ConnString(cfg), cfg)
}

// Open is New with an explicit connection string; pool settings still come
// from cfg.
func Open(ctx context.Context, connString string, cfg config.Database) (*DB, error) {
	pc, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres config: %w", err)
	}
	pc.MaxConns = int32(cfg.MaxOpenConns())
	pc.MaxConnLifetime = cfg.PoolRecycle
	pc.ConnConfig.ConnectTimeout = cfg.PoolTimeout

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	db := &DB{pool: pool, timeout: cfg.PoolTimeout}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the birthdays table if needed.
func (db *DB) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	_, err := db.pool.Exec(
		ctx,
		`create table if not exists birthdays (username text primary key not null, birthday date not null)`,
	)
	return store.Unavailable("migrate", err)
}

// Upsert inserts or replaces the birth date for username.
func (db *DB) Upsert(ctx context.Context, username string, birthDate civil.Date) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	_, err := db.pool.Exec(
		ctx,
		`insert into birthdays (username, birthday) values ($1::text, $2::date) on conflict (username) do update set birthday = excluded.birthday`,
		username,
		birthDate.String(),
	)
	return store.Unavailable("upsert", err)
}

// Lookup retrieves the birth date stored for username.
func (db *DB) Lookup(ctx context.Context, username string) (civil.Date, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	var date time.Time
	if err := db.pool.
		QueryRow(ctx, `select birthday from birthdays where username = $1`, username).
		Scan(&date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return civil.Date{}, store.ErrNotFound
		}
		return civil.Date{}, store.Unavailable("lookup", err)
	}
	return civil.DateOf(date), nil
}

// Count returns the number of stored records.
func (db *DB) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	var n int64
	if err := db.pool.QueryRow(ctx, `select count(*) from birthdays`).Scan(&n); err != nil {
		return 0, store.Unavailable("count", err)
	}
	return int(n), nil
}

// Ping checks connectivity.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	return store.Unavailable("ping", db.pool.Ping(ctx))
}

// Backend reports "postgres".
func (db *DB) Backend() string { return config.DriverPostgres }

// Close releases the pool.
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}
