// Package diag collects the warnings and errors a front-end builder or
// reducer pass raises while walking user input, the way a compiler's
// diagnostic sink does: nothing is fatal until Close is called.
package diag

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Severity classifies a Diagnostic. Warnings are informational; an Error
// recorded anywhere in a Sink's lifetime makes Close exit the process.
type Severity int

const (
	WarningLevel Severity = iota
	ErrorLevel
)

func (s Severity) String() string {
	switch s {
	case ErrorLevel:
		return "error"
	default:
		return "warning"
	}
}

// Diagnostic is one recorded warning or error, identified so a caller can
// correlate it against a later report even after the Sink has been drained.
type Diagnostic struct {
	ID       uuid.UUID
	Severity Severity
	Summary  string
}

// Sink accumulates diagnostics raised during graph construction. The zero
// value is not usable; construct one with NewSink.
type Sink struct {
	mu     sync.Mutex
	diags  []Diagnostic
	logger hclog.Logger
}

// NewSink returns a Sink that also logs each diagnostic through logger. A
// nil logger is replaced with hclog's null logger, mirroring the rest of
// this module's nil-safe logging convention.
func NewSink(logger hclog.Logger) *Sink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Sink{logger: logger}
}

// Warningf records a non-fatal diagnostic. A nil Sink discards it, so a
// Builder constructed without one can still call through unconditionally.
func (s *Sink) Warningf(format string, args ...any) Diagnostic {
	if s == nil {
		return Diagnostic{ID: uuid.New(), Severity: WarningLevel, Summary: fmt.Sprintf(format, args...)}
	}
	return s.record(WarningLevel, format, args...)
}

// Errorf records a diagnostic that will make Close exit the process. A nil
// Sink discards it rather than panicking.
func (s *Sink) Errorf(format string, args ...any) Diagnostic {
	if s == nil {
		return Diagnostic{ID: uuid.New(), Severity: ErrorLevel, Summary: fmt.Sprintf(format, args...)}
	}
	return s.record(ErrorLevel, format, args...)
}

func (s *Sink) record(sev Severity, format string, args ...any) Diagnostic {
	d := Diagnostic{
		ID:       uuid.New(),
		Severity: sev,
		Summary:  fmt.Sprintf(format, args...),
	}

	s.mu.Lock()
	s.diags = append(s.diags, d)
	s.mu.Unlock()

	lvl := hclog.Warn
	if sev == ErrorLevel {
		lvl = hclog.Error
	}
	s.logger.Log(lvl, d.Summary, "diagnostic_id", d.ID)
	return d
}

// HasErrors reports whether any Error-level diagnostic has been recorded. A
// nil Sink has recorded nothing.
func (s *Sink) HasErrors() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.diags {
		if d.Severity == ErrorLevel {
			return true
		}
	}
	return false
}

// Diagnostics returns a copy of every diagnostic recorded so far, in
// recording order. A nil Sink returns nil.
func (s *Sink) Diagnostics() []Diagnostic {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Close exits the process with status 1 if any Error-level diagnostic was
// recorded. It is meant to be deferred by a command's main, not called by
// library code. A nil Sink never exits.
func (s *Sink) Close() {
	if s.HasErrors() {
		os.Exit(1)
	}
}
