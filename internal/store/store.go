// Package store is the gorm-backed Record Store for users, budgets and
// expenses.
//
// Every call runs under a bounded timeout. Failures are reduced to a small set
// of sentinels (ErrNotFound, ErrDuplicate, ErrUnavailable) so the ledgers can
// map them without knowing which SQL driver is underneath. Uniqueness is left
// to the database indexes: inserts never pre-check for an existing row.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultTimeout is used when New is given a non-positive timeout.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotFound means no row matched the id and owner.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrUnavailable means the database could not be reached in time.
	ErrUnavailable = errors.New("store unavailable")
)

// Store implements the user, budget and expense stores on top of gorm.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// New creates a Store. The gorm handle should be opened with TranslateError
// enabled so that unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{db: db, timeout: timeout}
}

// Ping checks that the database answers within the store timeout.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		return classify(err)
	}
	return classify(sqlDB.PingContext(ctx))
}

// run executes fn against a session bound to a timeout-limited context and
// classifies the resulting error.
func (s *Store) run(ctx context.Context, fn func(db *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return classify(fn(s.db.WithContext(ctx)))
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate), errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// isUniqueViolation catches unique violations from drivers that gorm does not
// translate.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
