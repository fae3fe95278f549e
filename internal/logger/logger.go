package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-ipconf/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = zap.NewNop()

// InitLogger builds the global logger. The log file directory is created if
// missing.
func InitLogger(cfg *config.LoggerConfig) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	encoder := getEncoder(cfg.Mode)
	stdout := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		level,
	)

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	var core zapcore.Core
	switch {
	case cfg.Path == "":
		// No file configured, console only.
		core = stdout
	case strings.ToLower(cfg.Mode) == "dev":
		core = zapcore.NewTee(stdout, zapcore.NewCore(encoder, getLogWriter(cfg), level))
	default:
		core = zapcore.NewCore(encoder, getLogWriter(cfg), level)
	}

	Logger = zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(Logger)
	return nil
}

func getEncoder(mode string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	if strings.ToLower(mode) == "dev" {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}

func getLogWriter(cfg *config.LoggerConfig) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	})
}
