package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sprite-ai/consentlens/internal/config"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds a text logger writing to w.
func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.Level)}))
}

// newFileLogger logs to cfg.File, or discards when no file is configured.
// The interactive form owns the terminal, so it never logs to stderr.
func newFileLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	if cfg.File == "" {
		return newLogger(cfg, io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return newLogger(cfg, f), func() { f.Close() }, nil
}
