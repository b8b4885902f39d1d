// Package store defines the persistence gateway for birthday records and the
// outcomes its implementations may report.
//
// Implementations return nil, ErrNotFound, or an error matching
// ErrStoreUnavailable. Driver errors never escape unwrapped.
package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	// ErrNotFound is returned by Lookup when no record exists for the username.
	ErrNotFound = errors.New("no birth date found")

	// ErrStoreUnavailable covers connectivity loss, timeouts and failed queries.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// UnavailableError records the failed operation and its cause.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrStoreUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }

// Unavailable wraps err as a store failure for op. A nil err stays nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UnavailableError{Op: op, Err: err}
}

// Gateway is the upsert and point-lookup contract the service depends on.
type Gateway interface {
	// Upsert stores birthDate for username, replacing any existing date.
	Upsert(ctx context.Context, username string, birthDate civil.Date) error
	// Lookup returns the birth date stored for username, or ErrNotFound.
	Lookup(ctx context.Context, username string) (civil.Date, error)
}

// Prober reports store health.
type Prober interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Backend() string
}

// Store is a complete backend with its own lifecycle.
type Store interface {
	Gateway
	Prober
	// Migrate creates the birthdays table if it does not already exist.
	Migrate(ctx context.Context) error
	Close() error
}
