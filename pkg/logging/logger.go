package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// LinePrefix marks every text-mode log line written by the tool.
const LinePrefix = "📱 "

// Options controls how NewLogger builds a logger.
type Options struct {
	// Level is an hclog level name, optionally prefixed with "json" or "json:"
	// to switch to JSON output (e.g. "json:debug").
	Level string
	// JSON forces JSON output regardless of Level.
	JSON bool
	// Path appends log output to a file instead of Output.
	Path string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	if opts.Path != "" {
		if file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			output = file
		}
	}

	level, jsonFormat := ParseLevel(opts.Level)
	jsonFormat = jsonFormat || opts.JSON

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter(LinePrefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLevel splits a "json[:level]" spec into its level and JSON flag.
// An empty level defaults to info.
func ParseLevel(spec string) (string, bool) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if !strings.HasPrefix(spec, "json") {
		if spec == "" {
			return "info", false
		}
		return spec, false
	}

	parts := strings.SplitN(spec, ":", 2)
	if len(parts) > 1 && parts[1] != "" {
		return parts[1], true
	}
	return "info", true
}

// OrNull returns logger, or a null logger when logger is nil.
func OrNull(logger hclog.Logger) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger
}
