package cli

import (
	"io"
	"log/slog"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger writes to w, usually stderr so that decoded JSON on stdout stays clean.
func NewLogger(w io.Writer, level string, format string) *slog.Logger {
	options := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: parseLevel(level) == slog.LevelDebug,
	}
	var handler slog.Handler
	if strings.ToLower(format) == FormatJSON {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	return slog.New(handler)
}
