// Package postgres provides the PostgreSQL dialect for sqlstore.
//
// Two database/sql drivers are supported and selected by
// config.Database.Driver: "postgres" (lib/pq) and "pgx" (pgx's stdlib
// adapter). Both are registered here; error classification understands
// the error types of each.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// Driver names accepted in config.
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// SQLSTATE codes we act on.
const (
	codeUniqueViolation = "23505"
	codeDuplicateTable  = "42P07"
)

// Dialect implements sqlstore.Dialect for PostgreSQL.
type Dialect struct {
	// Driver is DriverPQ or DriverPGX. Empty means DriverPQ.
	Driver string
}

var _ sqlstore.Dialect = Dialect{}

func (d Dialect) DriverName() string {
	if d.Driver == "" {
		return DriverPQ
	}
	return d.Driver
}

// TableExistsQuery checks information_schema in the current schema.
// Unquoted identifiers are folded to lower case by PostgreSQL, so the
// argument is lowered too.
func (Dialect) TableExistsQuery() string {
	return `SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = lower(?)`
}

func (Dialect) CreateTableStatement(table string) string {
	return `CREATE TABLE ` + table + ` (
		ID     INTEGER      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		NAME   VARCHAR(100) NOT NULL,
		EMAIL  VARCHAR(100) NOT NULL UNIQUE,
		AGE    INTEGER      NOT NULL,
		GENDER CHAR(1)      NOT NULL
	)`
}

func (Dialect) IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

func (Dialect) IsTableExists(err error) bool {
	return sqlState(err) == codeDuplicateTable
}

// sqlState extracts the SQLSTATE from either driver's error type.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// New connects using cfg.Database, creates the students table if needed,
// and returns the store.
func New(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	d := Dialect{Driver: cfg.Database.Driver}
	store, err := sqlstore.Open(ctx, d, cfg.Database.DSN, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: %w", err)
	}
	return store, nil
}
