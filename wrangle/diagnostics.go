package main

import (
	"context"
	"fmt"
	"log/slog"
)

type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a problem found in the input tables that didn't stop
// generation. Source names the input or pipeline stage that reported it.
type Diagnostic struct {
	Severity Severity
	Source   string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Source, d.Message)
}

// Diagnostics accumulates reports across all stages of one run.
type Diagnostics []Diagnostic

func (ds *Diagnostics) Notef(source, format string, args ...any) {
	ds.add(SeverityNote, source, format, args...)
}

func (ds *Diagnostics) Warnf(source, format string, args ...any) {
	ds.add(SeverityWarning, source, format, args...)
}

func (ds *Diagnostics) Errorf(source, format string, args ...any) {
	ds.add(SeverityError, source, format, args...)
}

func (ds *Diagnostics) add(sev Severity, source, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Severity: sev,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Count returns how many diagnostics are at least as severe as the given one.
func (ds Diagnostics) Count(threshold Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity >= threshold {
			n++
		}
	}
	return n
}

// Err returns an error summarizing the diagnostics if any reach the given
// severity, or nil otherwise. Strict mode calls this with SeverityWarning.
func (ds Diagnostics) Err(threshold Severity) error {
	n := ds.Count(threshold)
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d diagnostic(s) at %s level or above", n, threshold)
}

// Log writes each diagnostic to the logger at a level matching its severity.
func (ds Diagnostics) Log(logger *slog.Logger) {
	for _, d := range ds {
		var lvl slog.Level
		switch d.Severity {
		case SeverityNote:
			lvl = slog.LevelInfo
		case SeverityWarning:
			lvl = slog.LevelWarn
		default:
			lvl = slog.LevelError
		}
		logger.Log(context.Background(), lvl, d.Message, "source", d.Source)
	}
}
