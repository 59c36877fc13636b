// Package logger configures the process-wide slog logger and carries the
// request ID through context so handlers and services log correlated records.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/botforge/botforge/internal/config"
)

// New builds a JSON logger writing to stdout. Every record carries the
// service name so multi-service log streams stay attributable.
func New(cfg config.Logging) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return slog.New(handler).With("service", cfg.Service)
}

// parseLevel maps a config string to a slog.Level, defaulting to info on
// anything unrecognized rather than failing startup.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
