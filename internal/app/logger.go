package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger builds the run logger. Unknown levels fall back to info; the
// CLI has already rejected them for command-line runs. The global logger is
// left untouched so tests can run apps side by side.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(outW, opts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}
