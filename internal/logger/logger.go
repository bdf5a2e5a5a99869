package logger

import (
	"log/slog"
	"os"
	"strings"
)

var log *slog.Logger

// Init configures structured logging. Level is one of debug, info, warn,
// error; anything else falls back to info.
func Init(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	log = slog.New(handler)
}

func Debug(msg string, args ...any) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if log != nil {
		log.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if log != nil {
		log.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if log != nil {
		log.Error(msg, args...)
	}
}
