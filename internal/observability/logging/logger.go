// Package logging builds the structured logger the binaries install as
// the slog default.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewJSONLogger returns a JSON slog logger tagging every record with
// the service name. The caller picks the destination: the api and
// worker log to stdout, while the mcp binary must log to stderr
// because stdout carries its wire protocol.
func NewJSONLogger(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
