package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the application logger: human-readable text by default,
// JSON when LOG_FORMAT=json for log shippers.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
}
