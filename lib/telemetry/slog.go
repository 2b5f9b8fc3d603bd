package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text handler. debug turns on debug-level
// output, which includes per-request scraping logs.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
