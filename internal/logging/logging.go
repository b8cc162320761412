// internal/logging/logging.go
package logging

import (
	"io"
	"log/slog"
)

// New builds the logger a stage entry point injects into the pipeline.
// There is no process-global configuration: every RunContext constructs
// its own logger, so embedding several stages in one process cannot leak
// settings between them. quiet keeps errors only.
func New(w io.Writer, quiet bool) *slog.Logger {
	lvl := slog.LevelInfo
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
