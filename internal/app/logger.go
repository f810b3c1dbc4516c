package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the app's own logger. It does not touch slog.Default, so
// several apps can run side by side in tests. Unknown levels fall back to
// info; NewConfig rejects them before this point.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelStr))); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "text" {
		handler = slog.NewTextHandler(outW, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	}

	return slog.New(handler).With("app", "liftsim")
}
