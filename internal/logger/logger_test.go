package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go-ipconf/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipconf.log")
	cfg := &config.LoggerConfig{Mode: "prod", Level: "debug", Path: path, MaxSize: 1}

	require.NoError(t, InitLogger(cfg))
	Logger.Info("parsed", zap.String("device", "R1"))
	_ = Logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "parsed")
	assert.Contains(t, string(data), "R1")
	assert.Same(t, Logger, zap.L())
}

func TestInitLoggerBadLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, InitLogger(&config.LoggerConfig{Mode: "dev", Level: "loud"}))

	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app", "ipconf.log")

	require.NoError(t, InitLogger(&config.LoggerConfig{Mode: "prod", Path: path, MaxSize: 1}))
	Logger.Info("ready")
	_ = Logger.Sync()

	assert.FileExists(t, path)
}

func TestInitLoggerUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	before := Logger

	err := InitLogger(&config.LoggerConfig{Mode: "prod", Path: filepath.Join(blocker, "ipconf.log")})

	assert.ErrorContains(t, err, "create log directory")
	assert.Same(t, before, Logger)
}
