// Package sqlite provides the SQLite dialect for sqlstore and a
// constructor that opens a SQLite-backed storage.Storage.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is the default backend for local runs and for tests.
//
// The go-sqlite3 import registers the "sqlite3" driver with database/sql
// from its init() function, and also provides the typed sqlite3.Error we
// inspect to classify failures.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Dialect implements sqlstore.Dialect for SQLite.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

func (Dialect) DriverName() string { return DriverName }

// TableExistsQuery looks the table up in sqlite_master. SQLite identifiers
// are case-insensitive, so the comparison is too.
func (Dialect) TableExistsQuery() string {
	return `SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE`
}

// CreateTableStatement returns the schema:
//
//	ID     — integer primary key, assigned by SQLite
//	NAME   — student's name
//	EMAIL  — unique across all rows
//	AGE    — age in years
//	GENDER — one of M, F, O
func (Dialect) CreateTableStatement(table string) string {
	return `CREATE TABLE ` + table + ` (
		ID     INTEGER      PRIMARY KEY AUTOINCREMENT,
		NAME   VARCHAR(100) NOT NULL,
		EMAIL  VARCHAR(100) NOT NULL UNIQUE,
		AGE    INTEGER      NOT NULL,
		GENDER CHAR(1)      NOT NULL
	)`
}

// IsUniqueViolation reports a UNIQUE constraint failure.
func (Dialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// IsTableExists reports "table X already exists". SQLite has no dedicated
// code for it; it is a generic SQLITE_ERROR with that message.
func (Dialect) IsTableExists(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.Code == sqlite3.ErrError &&
		strings.Contains(sqliteErr.Error(), "already exists")
}

// ErrInMemoryDSN is returned by New for DSNs naming a private in-memory
// database. Connections are not kept idle between operations, so each one
// would see a fresh, empty database.
var ErrInMemoryDSN = errors.New("in-memory SQLite databases are not supported; use a file path")

func isInMemory(dsn string) bool {
	return dsn == ":memory:" ||
		strings.HasPrefix(dsn, "file::memory:") ||
		strings.Contains(dsn, "mode=memory")
}

// New opens the SQLite database named by cfg.Database.DSN (a file path or
// file: URI), creates the students table if needed, and returns the store.
func New(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	if isInMemory(cfg.Database.DSN) {
		return nil, fmt.Errorf("sqlite.New: %q: %w", cfg.Database.DSN, ErrInMemoryDSN)
	}

	store, err := sqlstore.Open(ctx, Dialect{}, cfg.Database.DSN, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}
	return store, nil
}
