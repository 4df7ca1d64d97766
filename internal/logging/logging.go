// Package logging constructs the hclog loggers used across the CLI and the
// engine with consistent settings.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/FuegoFro/rules-apple/internal/env"
)

// New creates a named hclog logger. Level and format come from the
// environment; output defaults to stderr when nil.
func New(name string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(env.LogLevel()),
		JSONFormat: env.JSONLog(),
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}
