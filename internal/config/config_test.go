package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheyzie/Cr8tive-Workspace-App/internal/config"
)

const yaml = `
app:
  env: dev
  timezone: Africa/Lagos
  audit_log: logs/audit.log
telegram:
  token: ""
  admin_chat_id: 1001
database:
  driver: sqlite3
  dsn: workspace.db
metrics:
  enabled: true
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("APP_DATABASE_DSN", "override.db")

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "logs/audit.log", c.App.AuditLog)
	assert.Equal(t, int64(1001), c.Telegram.AdminChatID)
	assert.Equal(t, "sqlite3", c.Database.Driver)
	assert.Equal(t, "override.db", c.Database.DSN)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.True(t, c.Metrics.Enabled)

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Lagos", loc.String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
