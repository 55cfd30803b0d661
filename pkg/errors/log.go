package errors

import (
	"context"
	"log/slog"
)

// LogHandler is an ErrorHandler that writes through a slog.Logger.
type LogHandler struct {
	// Logger receives the records. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose adds stack traces to panic records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a WillError. Focus errors are expected degradations and
// are logged at debug level; everything else at error level.
func (h *LogHandler) HandleError(err *WillError) {
	if err == nil {
		return
	}
	level := slog.LevelError
	if err.Kind == KindFocus {
		level = slog.LevelDebug
	}
	h.logger().Log(context.Background(), level, "will error",
		"op", err.Op,
		"kind", err.Kind.String(),
		"err", err.Err,
	)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("will panic", attrs...)
}
