package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/pkg/logger"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Open connects to the configured database, applies pool limits and
// verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url is required")
	}
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite has a single writer; one connection also keeps :memory:
		// databases alive for the life of the pool.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// EnsureSchema creates the account and message tables if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	name := "schema/postgres.sql"
	if driver == config.DriverSQLite {
		name = "schema/sqlite.sql"
	}
	ddl, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fault("apply schema", err)
	}
	return nil
}

// fault logs a failed store operation and wraps it for the service layer.
func fault(op string, err error) error {
	logger.Error("store operation failed", "op", op, "error", err)
	return &domain.PersistenceError{Op: op, Err: err}
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func rowsAffected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fault(op, err)
	}
	return n > 0, nil
}

// ListTables returns the user tables in the connected database, sorted by
// name.
func ListTables(ctx context.Context, db *sql.DB, driver string) ([]string, error) {
	query := `SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename`
	if driver == config.DriverSQLite {
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fault("list tables", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fault("scan table name", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fault("list tables", err)
	}
	return tables, nil
}
