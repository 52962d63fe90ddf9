package internal

import (
	"os"

	"log/slog"
)

// ParseLogLevel maps a LOG_LEVEL-style string to an slog level. Unknown
// values fall back to info.
func ParseLogLevel(raw string) slog.Level {
	switch raw {
	case "ERROR":
		return slog.LevelError
	case "WARN":
		return slog.LevelWarn
	case "INFO":
		return slog.LevelInfo
	case "DEBUG", "TRACE":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the application logger from the LOG_LEVEL environment
// variable and installs it as the slog default.
func NewLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)
	return logger
}
