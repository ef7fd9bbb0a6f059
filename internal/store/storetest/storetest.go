// Package storetest opens migrated SQLite stores for tests.
package storetest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/infra/db"
	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/store"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a store over a fresh, migrated database file in t.TempDir.
func New(t *testing.T) *store.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "workspace.db")
	require.NoError(t, db.Migrate(context.Background(), db.DriverSQLite, dsn))
	return store.New(db.DriverSQLite, dsn, Logger())
}
