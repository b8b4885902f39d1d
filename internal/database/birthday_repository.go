package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cloud.google.com/go/civil"

	"github.com/isdelr/birthdaybot-be/internal/store"
)

var _ store.Store = (*BirthdayRepository)(nil)

// BirthdayRepository is the database/sql implementation of store.Store.
type BirthdayRepository struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
}

// NewBirthdayRepository creates a new BirthdayRepository. Every call is bounded
// by timeout.
func NewBirthdayRepository(db *sql.DB, dialect Dialect, timeout time.Duration) *BirthdayRepository {
	return &BirthdayRepository{db: db, dialect: dialect, timeout: timeout}
}

// Upsert inserts or replaces the birth date for username.
func (r *BirthdayRepository) Upsert(ctx context.Context, username string, birthDate civil.Date) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.dialect.Upsert, username, birthDate.String())
	return store.Unavailable("upsert", err)
}

// Lookup retrieves the birth date stored for username.
func (r *BirthdayRepository) Lookup(ctx context.Context, username string) (civil.Date, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var raw string
	err := r.db.QueryRowContext(ctx, "SELECT birthday FROM birthdays WHERE username = ?", username).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return civil.Date{}, store.ErrNotFound
	}
	if err != nil {
		return civil.Date{}, store.Unavailable("lookup", err)
	}

	d, err := parseStoredDate(raw)
	if err != nil {
		return civil.Date{}, store.Unavailable("lookup", err)
	}
	return d, nil
}

// Count returns the number of stored records.
func (r *BirthdayRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM birthdays").Scan(&n); err != nil {
		return 0, store.Unavailable("count", err)
	}
	return n, nil
}

// Ping checks connectivity.
func (r *BirthdayRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return store.Unavailable("ping", r.db.PingContext(ctx))
}

// Migrate creates the birthdays table if needed.
func (r *BirthdayRepository) Migrate(ctx context.Context) error {
	return store.Unavailable("migrate", Migrate(ctx, r.db, r.dialect))
}

// Backend names the SQL dialect in use.
func (r *BirthdayRepository) Backend() string { return r.dialect.Name }

// Close releases the connection pool.
func (r *BirthdayRepository) Close() error { return r.db.Close() }

// parseStoredDate accepts plain dates and the timestamp form some drivers
// return for DATE columns.
func parseStoredDate(raw string) (civil.Date, error) {
	if d, err := civil.ParseDate(raw); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}
