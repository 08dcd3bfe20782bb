// Package logging builds the structured logger shared by the pipeline stages.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the given level ("debug", "info", "warn", "error")
// and format ("text" or "json").
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := log.Options{
		Level:           lvl,
		Prefix:          "rfm",
		ReportTimestamp: true,
	}
	switch strings.ToLower(format) {
	case "text", "":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return log.NewWithOptions(w, opts), nil
}

// Discard returns a logger that drops everything. Used by tests and library callers
// that do not care about progress output.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
