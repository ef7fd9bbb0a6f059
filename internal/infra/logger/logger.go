package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

func New(env string) *slog.Logger {
	return slog.New(handler(os.Stdout, env))
}

// NewAudit logs to stdout and appends the same records to the audit file at
// path. The returned closer releases the file.
func NewAudit(env, path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return New(env), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler(io.MultiWriter(os.Stdout, f), env)), f, nil
}

func handler(w io.Writer, env string) slog.Handler {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
