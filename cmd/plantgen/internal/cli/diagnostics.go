package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hsmgen/plantgen/internal/diagnostics"
)

// logDiagnostics replays every diagnostic the Sink collected through
// logger, one structured log entry per diagnostic, with severity and
// line as fields — the CLI's own formatting of the "diagnostic sink"
// collaborator interface spec.md §6 names, matching the Logging note in
// SPEC_FULL.md's AMBIENT STACK: diagnostics are logged with severity and
// line fields, never printed by the core packages themselves.
func logDiagnostics(logger *zap.Logger, diags []diagnostics.Diagnostic) {
	for _, d := range diags {
		level := levelFor(d.Severity)
		fields := []zap.Field{
			zap.String("severity", d.Severity.String()),
		}
		if d.Line > 0 {
			fields = append(fields, zap.Int("line", d.Line))
		}
		if d.Cause != nil {
			fields = append(fields, zap.Error(d.Cause))
		}
		logger.Check(level, d.Message).Write(fields...)
	}
}

func levelFor(s diagnostics.Severity) zapcore.Level {
	switch s {
	case diagnostics.InternalError:
		return zapcore.ErrorLevel
	case diagnostics.SemanticError, diagnostics.SyntaxError:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
