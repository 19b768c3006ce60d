// Package diagnostics defines the diagnostic severities and the
// collector every other core package reports through, instead of
// logging or returning a bare error.
package diagnostics

import (
	"fmt"

	"github.com/pkg/errors"
)

// Severity classifies a diagnostic. SyntaxError and SemanticError are
// recoverable: the offending input is skipped or omitted and processing
// continues. InconsistencyWarning flags something suspicious that does
// not block generation. InternalError means the generator itself hit a
// state it cannot reason past (e.g. an LCA walk falling off the top of
// the hierarchy) and generation must stop.
type Severity int

const (
	SyntaxError Severity = iota
	SemanticError
	InconsistencyWarning
	InternalError
)

func (s Severity) String() string {
	switch s {
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case InconsistencyWarning:
		return "warning"
	case InternalError:
		return "internal error"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported condition: a severity, the source line it
// refers to (0 when not line-specific), a human message, and — for
// InternalError, where the failure usually originates deeper in the
// call stack — an optional wrapped cause carrying a stack trace.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
	Cause    error
}

func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", d.Severity, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// Fatal reports whether the diagnostic's severity should stop generation.
func (d Diagnostic) Fatal() bool {
	return d.Severity == InternalError
}

// Sink collects diagnostics in report order. It is not safe for
// concurrent use — each generation run owns its own Sink.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Syntax records a recoverable syntax error at line.
func (s *Sink) Syntax(line int, format string, args ...any) {
	s.add(Diagnostic{Severity: SyntaxError, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Semantic records a recoverable semantic error at line.
func (s *Sink) Semantic(line int, format string, args ...any) {
	s.add(Diagnostic{Severity: SemanticError, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Warn records a non-fatal inconsistency warning.
func (s *Sink) Warn(line int, format string, args ...any) {
	s.add(Diagnostic{Severity: InconsistencyWarning, Line: line, Message: fmt.Sprintf(format, args...)})
}

// Internal records a fatal internal error, wrapping cause (if non-nil)
// with github.com/pkg/errors so the reported Diagnostic retains a stack
// trace back to where the inconsistency was first observed.
func (s *Sink) Internal(cause error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrap(cause, msg)
	} else {
		wrapped = errors.New(msg)
	}
	s.add(Diagnostic{Severity: InternalError, Message: msg, Cause: wrapped})
}

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}

// HasFatal reports whether any recorded diagnostic is an InternalError.
func (s *Sink) HasFatal() bool {
	for _, d := range s.diags {
		if d.Fatal() {
			return true
		}
	}
	return false
}

// HasErrors reports whether any recorded diagnostic is at SyntaxError,
// SemanticError or InternalError severity (i.e. excluding plain
// warnings).
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity != InconsistencyWarning {
			return true
		}
	}
	return false
}
