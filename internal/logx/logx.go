package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/models"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// StructuredOptions returns JSON logger options for a configured level name.
func StructuredOptions(level string) (pslog.Options, error) {
	opts := pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return opts, fmt.Errorf("unknown log level %q", level)
	}
	return opts, nil
}

// OpenFile returns a structured logger appending to path. The returned
// closer releases the file.
func OpenFile(path string, settings models.LogSettings) (pslog.Logger, io.Closer, error) {
	opts, err := StructuredOptions(settings.Level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return pslog.NewWithOptions(f, opts), f, nil
}

// WithWindow annotates the logger with a window id.
func WithWindow(log pslog.Logger, id int) pslog.Logger {
	return log.With("window", id)
}

// WithDocument annotates the logger with the document path when bound.
func WithDocument(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		log = log.With("path", path)
	}
	return log
}
