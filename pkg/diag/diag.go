// Package diag collects the conditions reported while building a testbench
// model. Reports are kept in order and mirrored to a structured logger, so
// detection stays separate from presentation.
package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Severity grades a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Diagnostic is one reported condition.
type Diagnostic struct {
	Severity  Severity
	Component string
	Message   string
}

// String formats the diagnostic for terminal output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Component, d.Message)
}

// Collector accumulates diagnostics for one pipeline run.
type Collector struct {
	logger *slog.Logger
	items  []Diagnostic
}

// NewCollector creates a collector that mirrors reports to logger. A nil
// logger disables mirroring.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// Logger returns the logger reports are mirrored to. It is never nil.
func (c *Collector) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}

// Report records a diagnostic.
func (c *Collector) Report(sev Severity, component, format string, args ...any) {
	d := Diagnostic{
		Severity:  sev,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
	c.items = append(c.items, d)
	if c.logger != nil {
		c.logger.Log(context.Background(), sev.Level(), d.Message, slog.String("component", component))
	}
}

// Infof records an informational diagnostic.
func (c *Collector) Infof(component, format string, args ...any) {
	c.Report(Info, component, format, args...)
}

// Warnf records a warning.
func (c *Collector) Warnf(component, format string, args ...any) {
	c.Report(Warning, component, format, args...)
}

// Errorf records an error. Errors do not stop the pipeline.
func (c *Collector) Errorf(component, format string, args ...any) {
	c.Report(Error, component, format, args...)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns the diagnostics at or above least.
func (c *Collector) Filter(least Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.items {
		if d.Severity >= least {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many diagnostics have exactly the given severity.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error was recorded.
func (c *Collector) HasErrors() bool {
	return c.Count(Error) > 0
}
