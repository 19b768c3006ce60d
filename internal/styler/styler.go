// Package styler turns Model entities into target-language identifiers.
// It is pure and stateless apart from its Config: the same (model,
// entity) pair always yields the same name.
package styler

import "github.com/hsmgen/plantgen/internal/model"

// Config selects between the two naming modes the Emitter supports.
type Config struct {
	// SimpleNames, if true, uses a state's own name as its base
	// identifier instead of the full parent-qualified chain.
	SimpleNames bool
}

// Styler maps Model entities to identifiers, given a frozen Model and a
// Config.
type Styler struct {
	m   *model.Model
	cfg Config
}

// New returns a Styler over m configured by cfg.
func New(m *model.Model, cfg Config) *Styler {
	return &Styler{m: m, cfg: cfg}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] = b[0] - 'a' + 'A'
	}
	return string(b)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// Base returns a state's base identifier: in nested mode, the parent's
// base joined with "_" and the state's own (capitalized) name; in
// simple mode, just the state's own capitalized name.
func (s *Styler) Base(st model.State) string {
	if s.cfg.SimpleNames || st.Parent == 0 {
		return capitalize(st.Name)
	}
	parent, ok := s.m.StateByID(st.Parent)
	if !ok {
		return capitalize(st.Name)
	}
	return s.Base(parent) + "_" + capitalize(st.Name)
}

// ModelName returns the model's own name, already capitalized by the
// Parser at `model NAME` time.
func (s *Styler) ModelName() string {
	return s.m.Name
}

// StateEnumType is the Go type name for the generated state enumeration.
func (s *Styler) StateEnumType() string {
	return s.ModelName() + "_State"
}

// StateEnumValue is the enum constant identifying st.
func (s *Styler) StateEnumValue(st model.State) string {
	return s.StateEnumType() + "_" + s.Base(st)
}

// StateReact is the per-state react function name.
func (s *Styler) StateReact(st model.State) string {
	return "state_" + lower(s.Base(st)) + "_react"
}

// StateEntryAction is the per-state entry action function name.
func (s *Styler) StateEntryAction(st model.State) string {
	return "state_" + lower(s.Base(st)) + "_entry_action"
}

// StateExitAction is the per-state exit action function name.
func (s *Styler) StateExitAction(st model.State) string {
	return "state_" + lower(s.Base(st)) + "_exit_action"
}

// EventRaise is the raise function name for a named event.
func (s *Styler) EventRaise(ev model.Event) string {
	return "raise_" + ev.Name
}

// VariableGetter is the public getter function name for a variable.
func (s *Styler) VariableGetter(v model.Variable) string {
	return "get_" + v.Name
}

// TimeTick is the name of the tick entry point.
func (s *Styler) TimeTick() string {
	return "time_tick"
}

// TraceStateEnter is the name of the entry trace hook.
func (s *Styler) TraceStateEnter() string {
	return "trace_state_enter"
}

// TraceStateExit is the name of the exit trace hook.
func (s *Styler) TraceStateExit() string {
	return "trace_state_exit"
}

// EventIDConst is the generated constant name for an event's id, tagged
// with its direction/time-event prefix (in_, time_, internal_) so the
// event-id enumeration can distinguish otherwise-identically-named
// event classes.
func (s *Styler) EventIDConst(ev model.Event) string {
	switch {
	case ev.IsTimeEvent:
		return "time_" + ev.Name
	case ev.Direction == model.DirInternal:
		return "internal_" + ev.Name
	case ev.Direction == model.DirOutgoing:
		return "out_" + ev.Name
	default:
		return "in_" + ev.Name
	}
}
