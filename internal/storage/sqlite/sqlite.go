// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	moderncsqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/serrors"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const dialect = "sqlite3"

// Options tunes the store.
type Options struct {
	// OpTimeout bounds every store call. Zero disables the bound.
	OpTimeout time.Duration
	// BusyTimeout is how long a connection waits for SQLite's write lock.
	BusyTimeout time.Duration
	// UserExpenseLimit is the page size used when ListExpensesForUser gets a
	// non-positive limit.
	UserExpenseLimit int
	// MaxUserExpenseLimit caps the page size of ListExpensesForUser.
	MaxUserExpenseLimit int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		OpTimeout:           5 * time.Second,
		BusyTimeout:         5 * time.Second,
		UserExpenseLimit:    storage.DefaultUserExpenseLimit,
		MaxUserExpenseLimit: 1000,
	}
}

// Builder abstracts the goqu methods used to construct queries. Both a goqu
// database handle and a transaction handle implement it, so the same query
// code runs inside and outside transactions.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	builder *goqu.Database
	opts    Options
	now     func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts Options) (*SQLiteStore, error) {
	def := DefaultOptions()
	if opts.UserExpenseLimit <= 0 {
		opts.UserExpenseLimit = def.UserExpenseLimit
	}
	if opts.MaxUserExpenseLimit <= 0 {
		opts.MaxUserExpenseLimit = def.MaxUserExpenseLimit
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = def.BusyTimeout
	}
	busyMS := int(opts.BusyTimeout / time.Millisecond)

	if err := Migrate(dbPath, busyMS); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath, busyMS))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{
		db:      db,
		builder: goqu.Dialect(dialect).DB(db),
		opts:    opts,
		now:     time.Now,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// dsn builds a modernc.org/sqlite connection string. Pragmas are applied on
// every new pooled connection. _txlock=immediate makes BEGIN take the write
// lock, so reads inside a write transaction see a stable snapshot.
func dsn(dbPath string, busyTimeoutMS int) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		dbPath, busyTimeoutMS,
	)
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// withTimeout bounds a single store call.
func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.OpTimeout)
}

// inTx runs fn inside one transaction and commits if fn returns nil. BEGIN
// takes the write lock, so reads through b see no concurrent commits.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(b Builder) error) error {
	tx, err := s.builder.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// classify attaches a semantic kind to a failed store call. Errors that
// already carry a kind pass through unchanged.
func classify(ctx context.Context, err error, op string) error {
	if err == nil {
		return nil
	}
	if serrors.KindOf(err) != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return serrors.Wrap(serrors.ErrStorage, ctxErr, "%s", op)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return serrors.Wrap(serrors.ErrStorage, err, "%s", op)
	}

	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT {
		return serrors.Wrap(serrors.ErrConflict, err, "%s", op)
	}

	return serrors.Wrap(serrors.ErrStorage, err, "%s", op)
}
