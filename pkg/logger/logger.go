package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logger writing to stdout and to every extra writer.
// No business logic should depend on logging implementation details.
func New(appEnv string, extra ...io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	if len(extra) > 0 {
		w = io.MultiWriter(append([]io.Writer{os.Stdout}, extra...)...)
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// FileConfig sizes the rotating diagnostic log file.
type FileConfig struct {
	Path string
	// MaxSizeMB is the size at which the current file is rotated.
	MaxSizeMB  int
	MaxBackups int
}

// NewFile returns a size-rotated writer for cfg.Path. The file and its parent
// directories are created on first write.
func NewFile(cfg FileConfig) (*lumberjack.Logger, error) {
	if cfg.Path == "" {
		return nil, errors.New("log file path is empty")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 1024
	}
	if cfg.MaxBackups < 0 {
		return nil, fmt.Errorf("log file backups must not be negative, got %d", cfg.MaxBackups)
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}, nil
}

type ctxKey struct{}

// With stores a logger in context.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From gets a logger from context, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// ShutdownFlush closes w, giving up after timeout. A nil writer is a no-op.
func ShutdownFlush(ctx context.Context, timeout time.Duration, w *lumberjack.Logger) error {
	if w == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Close() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("log flush: %w", ctx.Err())
	}
}
