// Package cli implements the taskmap command-line interface.
//
// This package provides commands for analyzing task lists, computing
// layouts, rendering diagrams, exploring a graph interactively, serving
// the HTTP API, and managing the analysis cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Report cycles, depths, and blocking relations
//   - layout: Compute a force-directed layout and write it as JSON
//   - render: Generate SVG, DOT, JSON, PDF, or PNG diagrams
//   - explore: Browse tasks and their neighbourhoods in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the analysis cache
//
// # Configuration
//
// Defaults come from the TOML file loaded by package config. Flags that
// are set explicitly override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 42 tasks from tasks.json (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
