package diagnostics

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSinkRecordsInReportOrder(t *testing.T) {
	s := NewSink()
	s.Syntax(3, "unrecognized form %q", "state Foo <<bogus>>")
	s.Semantic(7, "choice %s has no default transition", "C1")
	s.Warn(0, "state %s is never reachable", "Dangling")

	got := s.All()
	assert.Len(t, got, 3)
	assert.Equal(t, SyntaxError, got[0].Severity)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, SemanticError, got[1].Severity)
	assert.Equal(t, InconsistencyWarning, got[2].Severity)
}

func TestHasFatalOnlyForInternalError(t *testing.T) {
	s := NewSink()
	s.Syntax(1, "bad line")
	assert.False(t, s.HasFatal())
	assert.True(t, s.HasErrors())

	s2 := NewSink()
	s2.Internal(nil, "no states reachable from top")
	assert.True(t, s2.HasFatal())
}

func TestInternalWrapsCauseWithStackTrace(t *testing.T) {
	s := NewSink()
	cause := errors.New("lca walk fell off top")
	s.Internal(cause, "entry path computation failed")

	d := s.All()[0]
	assert.ErrorIs(t, d, cause)
	assert.Contains(t, d.Error(), "internal error")
}

func TestHasErrorsFalseWhenOnlyWarnings(t *testing.T) {
	s := NewSink()
	s.Warn(2, "suspicious but not invalid")
	assert.False(t, s.HasErrors())
	assert.False(t, s.HasFatal())
}
