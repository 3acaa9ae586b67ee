package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so packages and tests can log unconditionally.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

// InitWithWriter installs a JSON logger writing to w.
func InitWithWriter(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

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
