// Package log builds [log/slog] handlers from CLI-friendly strings.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Supported log formats.
const (
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
	JSONFormat   = "json"
)

// CreateHandler creates a [slog.Handler] writing to w, configured by level
// and format strings as passed on the command line.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := charmlog.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	}

	switch strings.ToLower(logFormat) {
	case TextFormat, "":
		opts.Formatter = charmlog.TextFormatter
	case LogfmtFormat:
		opts.Formatter = charmlog.LogfmtFormatter
	case JSONFormat:
		opts.Formatter = charmlog.JSONFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}

	return charmlog.NewWithOptions(w, opts), nil
}
