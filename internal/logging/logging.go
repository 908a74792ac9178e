// Package logging configures the process-wide zap logger.
//
// All long-running components (gateway session, scheduler, health server,
// map watcher) log through a named child of the logger built here. The
// container runtime captures stdout/stderr, so logs go to stderr as
// single-line JSON in production form.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger. When verbose is true the level drops to
// Debug, which includes per-cycle scheduler timing output.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewNop returns a no-op logger for tests.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
