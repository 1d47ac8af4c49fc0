// Package logging provides the diagnostic logger. User-facing output goes
// through the CLI directly; this logger carries boundary diagnostics
// (config resolution, store paths, snapshot results) and stays silent
// unless verbose mode is on.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger writing to stderr when verbose is set,
// and a no-op logger otherwise.
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
