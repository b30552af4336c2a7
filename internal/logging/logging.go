package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// New creates a *slog.Logger writing JSON to stderr and optionally to logFile.
// Every record carries a run_id so lines from one pass can be grouped when
// the log file is shared between runs. The logger is also installed as the
// slog default. The returned cleanup func closes the log file if one was
// opened; callers must defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	writers := []io.Writer{os.Stderr}
	cleanup := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		cleanup = func() { _ = f.Close() }
	}

	logger := newLogger(io.MultiWriter(writers...), level, uuid.NewString())
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

func newLogger(w io.Writer, level, runID string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With("run_id", runID)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
