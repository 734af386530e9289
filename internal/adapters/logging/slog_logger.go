package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/throughput-go/internal/application/common"
	"github.com/andrescamacho/throughput-go/internal/infrastructure/config"
)

// SlogLogger implements common.Logger on top of log/slog
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// Verify interface compliance
var _ common.Logger = (*SlogLogger)(nil)

// NewSlogLogger creates a logger from the logging configuration.
// Close must be called when output is a file.
func NewSlogLogger(cfg config.LoggingConfig) (*SlogLogger, error) {
	var (
		w      io.Writer
		closer io.Closer
	)

	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "", "stderr":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger := NewWriterLogger(w, cfg.Level, cfg.Format, cfg.IncludeCaller)
	logger.closer = closer
	return logger, nil
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer, level, format string, includeCaller bool) *SlogLogger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: includeCaller,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// Log writes one record. Metadata keys are emitted in sorted order.
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, metadata[key]))
	}

	l.logger.Log(context.Background(), ParseLevel(level), message, attrs...)
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a level name to a slog level; unknown names map to info
func ParseLevel(level string) slog.Level {
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
