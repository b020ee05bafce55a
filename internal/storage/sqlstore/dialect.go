// Package sqlstore implements storage.Storage on top of database/sql via
// sqlx. The SQL it issues is shared by every engine; the parts that differ
// (driver name, table metadata lookup, DDL, error codes) come from a
// Dialect supplied by the sqlite and postgres packages.
//
// Queries are written with ? placeholders and rebound for the driver, so
// PostgreSQL receives $1, $2, ... and SQLite receives ?.
package sqlstore

// TableName is the single table this application owns.
const TableName = "STUDENT_DETAILS"

// Dialect describes one SQL engine.
type Dialect interface {
	// DriverName is the database/sql driver name, also used by sqlx to
	// pick the placeholder style.
	DriverName() string

	// TableExistsQuery returns a query with one ? parameter (the table
	// name) that yields a row when the table exists in the current schema
	// and no rows otherwise.
	TableExistsQuery() string

	// CreateTableStatement returns the DDL for the students table. It must
	// not contain IF NOT EXISTS: a concurrent creator has to surface as an
	// error that IsTableExists recognises.
	CreateTableStatement(table string) string

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool

	// IsTableExists reports whether err says the table is already there.
	IsTableExists(err error) bool
}
