package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// TelemetryStatus classifies how an execution ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// SlowCommandThreshold marks successful executions worth a warning. A full
// multi-locale build of the upstream README stays well below it.
const SlowCommandThreshold = 30 * time.Second

// TelemetryInfo describes one execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

// Slow reports whether a successful execution exceeded SlowCommandThreshold.
func (i TelemetryInfo) Slow() bool {
	return i.Status == TelemetryStatusSuccess && i.Duration > SlowCommandThreshold
}

// Telemetry is invoked once after every execution that passed validation.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes: Info on success, Warn when slow, Error on failure.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		entry := logger.WithContext(ctx)
		args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
		switch {
		case info.Slow():
			entry.Warn("command.execute.slow", args...)
		case info.Status == TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		default:
			entry.Error("command.execute."+string(info.Status), append(args, "error", info.Error)...)
		}
	}
}
