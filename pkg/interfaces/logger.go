package interfaces

import "context"

// Logger is the leveled logging contract used across the catalog packages.
// It matches github.com/goliatone/go-logger so that logger can be plugged in
// directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers able to carry persistent fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
