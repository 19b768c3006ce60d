// Package emitter produces a generated Go source file implementing the
// run-cycle state machine described by a frozen Model: state
// enumeration, event-id enumerations, the variable and timer
// aggregates, the machine type, its init routine, per-state react
// functions, entry/exit action functions, the top-level run cycle, and
// the externally raised event entry points.
package emitter

import (
	"fmt"
	"strings"

	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/model"
	"github.com/hsmgen/plantgen/internal/semantic"
	"github.com/hsmgen/plantgen/internal/styler"
)

// Config mirrors the generate() config of the core's external interface.
// ParentFirstExecution is carried through but not consulted: every
// emitted react function calls its parent's react function first.
type Config struct {
	Verbose              bool
	Tracing              bool
	SimpleNames          bool
	ParentFirstExecution bool
}

// emitter holds everything a single Emit pass threads through its
// sub-routines. It is internal — callers only see Emit.
type emitter struct {
	m       *model.Model
	a       *semantic.Analyzer
	s       *styler.Styler
	cfg     Config
	diag    *diagnostics.Sink
	pkgName string
}

// writer is a small indent-tracking text builder, in the style of the
// teacher's DiagramBuilder: a strings.Builder filled via Fprintf, with
// a prefix recomputed from the current indent depth.
type writer struct {
	b      strings.Builder
	indent int
}

func (w *writer) printf(format string, args ...any) {
	w.b.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.b, format, args...)
}

func (w *writer) blank() {
	w.b.WriteString("\n")
}

func (w *writer) String() string {
	return w.b.String()
}

// Emit runs the full pipeline over m and returns the generated Go
// source. Per spec §6 the body sink is always empty for this backend
// (Go has no header/source split); callers of the public Generate
// facade write this single string to one output file.
//
// Emit does not stop on internal inconsistency (e.g. a transition whose
// target cannot be resolved to any entry path): such a condition is
// reported to diag as InternalError, the code for that one piece is left
// out, and Emit carries on with the rest of the file. Generate discards
// the returned text once an InternalError has been recorded.
func Emit(m *model.Model, cfg Config, diag *diagnostics.Sink) string {
	e := &emitter{
		m:       m,
		a:       semantic.New(m),
		s:       styler.New(m, styler.Config{SimpleNames: cfg.SimpleNames}),
		cfg:     cfg,
		diag:    diag,
		pkgName: strings.ToLower(m.Name),
	}
	return e.emit()
}

func (e *emitter) emit() string {
	w := &writer{}

	w.printf("// Code generated by plantgen. DO NOT EDIT.\n")
	w.printf("package %s\n", e.pkgName)
	w.blank()
	for _, imp := range e.m.Imports {
		if strings.HasPrefix(imp.Content, `"`) {
			w.printf("import %s\n", imp.Content)
		} else {
			w.printf("import %q\n", imp.Content)
		}
	}
	if len(e.m.Imports) > 0 {
		w.blank()
	}

	e.emitStateEnum(w)
	w.blank()
	e.emitEventEnums(w)
	w.blank()
	e.emitTimerTypes(w)
	w.blank()
	e.emitVariableTypes(w)
	w.blank()
	e.emitRuntimeTables(w)
	w.blank()
	e.emitMachineType(w)
	w.blank()
	e.emitInit(w)
	w.blank()
	e.emitRunCycle(w)
	w.blank()
	e.emitReactFunctions(w)
	w.blank()
	e.emitActionFunctions(w)
	w.blank()
	e.emitRaiseFunctions(w)
	w.blank()
	e.emitTick(w)

	return w.String()
}
