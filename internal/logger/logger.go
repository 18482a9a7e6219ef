// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// buildConfig turns a zap config into a logger; tests replace it.
var buildConfig = func(cfg zap.Config) (*zap.Logger, error) {
	return cfg.Build()
}

// Log is shared by every package. It starts as a production logger so
// library code can log before main has configured anything.
var Log = newProduction()

// Init replaces Log. Debug mode uses the human readable development encoder.
// If the development logger cannot be built, Log falls back to the
// production logger at info level and the build error is returned.
func Init(debug bool) error {
	if !debug {
		Log = newProduction()
		return nil
	}

	level.SetLevel(zapcore.DebugLevel)
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	l, err := buildConfig(cfg)
	if err != nil {
		Log = newProduction()
		return fmt.Errorf("failed to build development logger: %w", err)
	}
	Log = l
	return nil
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	_ = Log.Sync()
}

func newProduction() *zap.Logger {
	level.SetLevel(zapcore.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	logger, err := buildConfig(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
