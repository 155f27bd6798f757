// Package logging builds the charmbracelet/log logger shared by storage and the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/config"
)

const prefix = "taskboard"

// Logger pairs a logger with the file it writes to, if any.
type Logger struct {
	*log.Logger
	file *os.File
}

// New opens the configured log file in append mode. With no file configured
// it returns a logger that discards everything.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return &Logger{Logger: newLogger(io.Discard, level)}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Logger{Logger: newLogger(f, level), file: f}, nil
}

// NewWriter logs to w. Used by tests and the non-interactive commands.
func NewWriter(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: newLogger(w, level)}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
