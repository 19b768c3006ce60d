// Package generate wires the core pipeline end to end: Lexer (via the
// Parser, which tokenizes each line itself), Parser, Semantic Analyzer,
// Styler and Emitter, behind the single collaborator interface spec.md
// §6 describes — input lines in, two text sinks out, a diagnostic sink
// threaded through every stage.
package generate

import (
	"io"

	"github.com/hsmgen/plantgen/internal/config"
	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/emitter"
	"github.com/hsmgen/plantgen/internal/model"
	"github.com/hsmgen/plantgen/internal/parser"
	"github.com/hsmgen/plantgen/internal/semantic"
)

// Result reports what one Generate call produced: the Model the
// Parser built (useful to a caller that also wants to run
// internal/diagram over the same input) and whether generation
// succeeded.
type Result struct {
	Model *model.Model
	Ok    bool
}

// Generate consumes inputLines (a complete `@startuml`...`@enduml`
// document, one line per element — the "source-line iterator" of
// spec.md §6 collapsed to a slice since the whole file is read before
// parsing begins), runs it through Parser -> Semantic -> Emitter, and
// writes the generated Go source to headerSink. bodySink exists only
// for fidelity to spec.md §6's two-channel code-writer collaborator;
// the Go backend emits a single file and never writes to it.
//
// Generate returns ok=false iff any fatal diagnostic (InternalError)
// was recorded; Validate records none, the Emitter records one for each
// piece of code it cannot produce. Recoverable diagnostics (SyntaxError,
// SemanticError, InconsistencyWarning) are reported but do not by
// themselves cause failure — spec.md §7's propagation policy.
func Generate(inputLines []string, headerSink, bodySink io.Writer, diag *diagnostics.Sink, cfg config.Config) Result {
	_ = bodySink

	m := parser.Parse(inputLines, diag)
	if cfg.ModelNameOverride != "" {
		m.SetName(cfg.ModelNameOverride)
	}

	semantic.Validate(m, diag)
	if diag.HasFatal() {
		return Result{Model: m, Ok: false}
	}

	out := emitter.Emit(m, cfg.Emitter(), diag)
	if diag.HasFatal() {
		return Result{Model: m, Ok: false}
	}

	if _, err := io.WriteString(headerSink, out); err != nil {
		diag.Internal(err, "generate: write header sink")
		return Result{Model: m, Ok: false}
	}

	return Result{Model: m, Ok: true}
}
