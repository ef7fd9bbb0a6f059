package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open returns a handle limited to a single connection. Callers close it
// when their operation is done.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	sqlDB, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = withForeignKeys(dsn)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}
	return sql.Open(driver, dsn)
}

// sqlite enforces ON DELETE CASCADE only when foreign keys are switched on
// for the connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func dialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("db: unsupported driver %q", driver)
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, driver, dsn string) error {
	d, err := dialect(driver)
	if err != nil {
		return err
	}
	// goose needs more than the single connection Open allows.
	sqlDB, err := open(driver, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, "migrations")
}
