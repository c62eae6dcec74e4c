package common

import "context"

// Logger is the logging port for simulation operations. The core performs no
// I/O itself; adapters supply an implementation (stdout, persisted event log).
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Log levels used across the simulation
const (
	LevelInfo    = "INFO"
	LevelSuccess = "SUCCESS"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op
// logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
}
