package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// TableExists reports whether a table called name exists in the current
// schema. The name is passed as a bind parameter, never spliced into SQL.
func TableExists(ctx context.Context, q sqlx.QueryerContext, d Dialect, name string) (bool, error) {
	query := sqlx.Rebind(sqlx.BindType(d.DriverName()), d.TableExistsQuery())

	var one int
	err := sqlx.GetContext(ctx, q, &one, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("TableExists: %w", err)
	}
	return true, nil
}

// EnsureTable creates the students table unless it already exists. It is
// safe to call on every startup and from several processes at once: losing
// the creation race to another initializer counts as success.
func EnsureTable(ctx context.Context, db *sqlx.DB, d Dialect) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("EnsureTable: acquire conn: %w", err)
	}
	defer conn.Close()

	exists, err := TableExists(ctx, conn, d, TableName)
	if err != nil {
		return fmt.Errorf("EnsureTable: %w", err)
	}
	if exists {
		slog.Info("table already exists, proceeding with operations",
			slog.String("table", TableName))
		return nil
	}

	if _, err := conn.ExecContext(ctx, d.CreateTableStatement(TableName)); err != nil {
		if d.IsTableExists(err) {
			slog.Info("table created concurrently, proceeding with operations",
				slog.String("table", TableName))
			return nil
		}
		// PostgreSQL can report a lost race as a unique violation on its
		// catalog instead of 42P07, so look again before giving up.
		if exists, lookupErr := TableExists(ctx, conn, d, TableName); lookupErr == nil && exists {
			slog.Info("table created concurrently, proceeding with operations",
				slog.String("table", TableName))
			return nil
		}
		return fmt.Errorf("EnsureTable: create table: %w", err)
	}

	slog.Info("table created", slog.String("table", TableName))
	return nil
}
