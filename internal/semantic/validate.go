package semantic

import (
	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/model"
)

// Validate checks the structural invariants of spec §3 against m and
// reports violations to diag as SemanticError. It never mutates m and
// does not stop emission. Given a transition with an unknown target or a
// choice without a unique default branch, the Emitter leaves out that
// transition's body or that choice's branches and reports an
// InternalError, so Generate fails for such a Model.
func Validate(m *model.Model, diag *diagnostics.Sink) {
	a := New(m)

	for _, s := range m.States {
		if s.Parent != 0 {
			if _, ok := m.StateByID(s.Parent); !ok {
				diag.Semantic(0, "state %s has unknown parent id %d", s.Name, s.Parent)
			}
		}
	}

	for _, t := range m.Transitions {
		src, srcOK := m.StateByID(t.Source)
		_, tgtOK := m.StateByID(t.Target)
		if !srcOK {
			diag.Semantic(0, "transition references unknown source state id %d", t.Source)
			continue
		}
		if !tgtOK {
			diag.Semantic(0, "transition from %s references unknown target state id %d", src.Name, t.Target)
			continue
		}

		// A null-event transition out of an Initial pseudostate is the
		// super-step entry transition (§4.4 FindInitialPath/FindEntryPath)
		// and is never matched through runtime event dispatch, so the
		// "only valid when target is final" constraint below does not
		// apply to it.
		if ev, ok := m.EventByID(t.Event); ok && ev.Name == model.NullEventName && src.Kind != model.StateInitial {
			target, _ := m.StateByID(t.Target)
			if target.Kind != model.StateFinal {
				diag.Semantic(0, "null-event transition from %s must target final, not %s", src.Name, target.Name)
			}
		}
	}

	for _, s := range m.States {
		switch s.Kind {
		case model.StateChoice:
			_, _, ok := a.ChoiceBranches(s.ID)
			if !ok {
				diag.Semantic(0, "choice %s must have exactly one default (guardless) transition", s.Name)
			}
			if len(m.TransitionsFrom(s.ID)) < 2 {
				diag.Semantic(0, "choice %s must have at least 2 outgoing transitions", s.Name)
			}

		case model.StateInitial:
			out := m.TransitionsFrom(s.ID)
			if len(out) != 1 {
				diag.Semantic(0, "initial pseudostate (parent %d) must have exactly one outgoing transition, has %d", s.Parent, len(out))
			}

		case model.StateFinal:
			if len(m.TransitionsFrom(s.ID)) != 0 {
				diag.Semantic(0, "final pseudostate (parent %d) must have no outgoing transitions", s.Parent)
			}
		}
	}
}
