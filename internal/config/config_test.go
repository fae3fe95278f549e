package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Web.Addr())
	assert.Equal(t, 4*1024*1024, cfg.Web.BodyLimit)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 10*time.Minute, cfg.SNMP.Interval())
	assert.Equal(t, 2*time.Second, cfg.SNMP.TimeoutDuration())
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("POLL_INTERVAL", "0")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost user=ipconf dbname=ipconf")
	t.Setenv("LOG_COMPRESS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Web.Port)
	assert.Zero(t, cfg.SNMP.Interval())
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "host=localhost user=ipconf dbname=ipconf", cfg.DB.DSN)
	assert.True(t, cfg.Logger.Compress)
}

func TestLoadFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := "web_port: \"7070\"\nsnmp_retries: 3\nlog_mode: prod\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ipconf.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Web.Port)
	assert.Equal(t, 3, cfg.SNMP.Retries)
	assert.Equal(t, "prod", cfg.Logger.Mode)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	inTempDir(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported db_driver")
}
