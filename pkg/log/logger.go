// Package log provides the structured logging facade used across the SDK.
//
// The library itself only ever logs through the Logger interface, so callers
// embedding the SDK can plug in their own logging backend (or NewNoopLogger)
// without pulling in any particular logging framework at the call site.
package log

import (
	"os"

	ipfslog "github.com/ipfs/go-log/v2"
	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a logger interface.
type Logger interface {
	// Debug logs a message at debug level.
	// keysAndValues are treated as key-value pairs (e.g., "key1", value1, "key2", value2).
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at info level.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at warn level.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at error level.
	Error(msg string, keysAndValues ...any)
	// With returns a new logger with the given key-value pair attached to
	// every subsequent entry.
	With(key string, value any) Logger
	// NewSystem returns a new logger for the named subsystem.
	NewSystem(name string) Logger
}

// NewLogger returns a Logger for the named system backed by ipfs/go-log's
// shared zap core. Log levels are controlled through go-log's usual
// GOLOG_LOG_LEVEL environment handling.
func NewLogger(name string) Logger {
	return &zapLogger{
		lg: ipfslog.Logger(name).SugaredLogger.Desugar().WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// NewLogfmtLogger returns a Logger writing logfmt-encoded entries to stderr
// at the given level. Intended for command-line entrypoints where the go-log
// environment plumbing is not wanted.
func NewLogfmtLogger(name, level string) Logger {
	lvl := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}
	core := zapcore.NewCore(
		zaplogfmt.NewEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return &zapLogger{
		lg: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(name).Sugar(),
	}
}

// NewNoopLogger returns a Logger that discards everything. It is the default
// inside the SDK when the caller does not supply a logger.
func NewNoopLogger() Logger {
	return &zapLogger{lg: zap.NewNop().Sugar()}
}

type zapLogger struct {
	lg *zap.SugaredLogger
}

func (l *zapLogger) Debug(msg string, keysAndValues ...any) {
	l.lg.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...any) {
	l.lg.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...any) {
	l.lg.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...any) {
	l.lg.Errorw(msg, keysAndValues...)
}

func (l *zapLogger) With(key string, value any) Logger {
	return &zapLogger{lg: l.lg.With(key, value)}
}

func (l *zapLogger) NewSystem(name string) Logger {
	return &zapLogger{lg: l.lg.Named(name)}
}
