// Package model holds the in-memory intermediate representation (IR) that
// the Parser builds and the Semantic Analyzer / Emitter read: states,
// events, transitions, declarations, variables and imports, plus the raw
// UML lines the diagram was parsed from.
//
// A Model is constructed empty and mutated monotonically (append-only) by
// the Parser, then frozen before the Semantic Analyzer and Emitter read it.
// Entities are never deleted; references between entities are by id, not
// by pointer, so a Model is trivially copyable.
package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Model is the single root of the IR: it owns every state, event,
// transition, declaration, variable and import belonging to one diagram.
type Model struct {
	Name string

	States       []State
	Events       []Event
	Transitions  []Transition
	Declarations []Declaration
	Variables    []Variable
	Imports      []Import
	UMLLines     []string

	nextStateID int
	nextEventID int
	nextTransID int
	nextDeclID  int
	nextVarID   int

	// stateIndex maps a dedup key (see stateKey) to the id of the state
	// already holding that name, preserving first-insertion order for
	// any future iteration over the index itself.
	stateIndex *orderedmap.OrderedMap[string, int]
	eventIndex *orderedmap.OrderedMap[string, int]
}

// New returns an empty Model ready for the Parser to populate.
func New() *Model {
	return &Model{
		stateIndex: orderedmap.New[string, int](),
		eventIndex: orderedmap.New[string, int](),
	}
}

// SetName sets the model name, capitalizing its first character as
// spec.md §4.2 requires for the `model NAME` form.
func (m *Model) SetName(name string) {
	if name == "" {
		m.Name = name
		return
	}
	m.Name = capitalize(name)
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

// stateKey returns the dedup key for a candidate state. "initial" and
// "final" are unique per parent (spec.md §3); every other name is unique
// per model regardless of parent.
func stateKey(name string, parent int) string {
	if name == "initial" || name == "final" {
		return name + "@" + itoa(parent)
	}
	return name
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// AddState inserts a new state or returns the id of an existing one per
// the dedup rule of spec.md §4.2. Kind is only applied to newly created
// states; deduplicating onto an existing state never changes its kind.
func (m *Model) AddState(name string, parent int, kind StateKind) int {
	key := stateKey(name, parent)
	if id, ok := m.stateIndex.Get(key); ok {
		return id
	}
	m.nextStateID++
	id := m.nextStateID
	m.States = append(m.States, State{ID: id, Name: name, Parent: parent, Kind: kind})
	m.stateIndex.Set(key, id)
	return id
}

// AddEvent inserts a new event or returns the id of the first event
// already declared with that name (events dedup globally by name,
// first definition wins, per spec.md §4.2).
func (m *Model) AddEvent(ev Event) int {
	if id, ok := m.eventIndex.Get(ev.Name); ok {
		return id
	}
	m.nextEventID++
	ev.ID = m.nextEventID
	m.Events = append(m.Events, ev)
	m.eventIndex.Set(ev.Name, ev.ID)
	return ev.ID
}

// AddTransition appends a new transition, unconditionally (transitions
// are never deduplicated).
func (m *Model) AddTransition(t Transition) int {
	m.nextTransID++
	t.ID = m.nextTransID
	m.Transitions = append(m.Transitions, t)
	return t.ID
}

// AddDeclaration appends a new per-state declaration.
func (m *Model) AddDeclaration(d Declaration) int {
	m.nextDeclID++
	d.ID = m.nextDeclID
	m.Declarations = append(m.Declarations, d)
	return d.ID
}

// AddVariable appends a new variable. Variables are not deduplicated by
// the core; uniqueness is a Semantic Analyzer invariant check.
func (m *Model) AddVariable(v Variable) int {
	m.nextVarID++
	v.ID = m.nextVarID
	m.Variables = append(m.Variables, v)
	return v.ID
}

// AddImport appends a verbatim import/include line.
func (m *Model) AddImport(imp Import) {
	m.Imports = append(m.Imports, imp)
}

// AddUMLLine records one raw source line of the @startuml block in
// UMLLines. No later stage reads UMLLines; the generated source does not
// include the diagram text.
func (m *Model) AddUMLLine(line string) {
	m.UMLLines = append(m.UMLLines, line)
}

// StateByID returns the state with the given id, or the zero State and
// false if none exists. Id 0 ("no parent") never resolves.
func (m *Model) StateByID(id int) (State, bool) {
	if id == 0 {
		return State{}, false
	}
	for _, s := range m.States {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}

// StateByName returns the first state registered under name, regardless
// of parent — this only gives a meaningful answer for names that are
// unique per model (i.e. anything other than "initial"/"final").
func (m *Model) StateByName(name string) (State, bool) {
	for _, s := range m.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// EventByID returns the event with the given id.
func (m *Model) EventByID(id int) (Event, bool) {
	for _, e := range m.Events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// EventByName returns the event registered under name, if any.
func (m *Model) EventByName(name string) (Event, bool) {
	if id, ok := m.eventIndex.Get(name); ok {
		return m.EventByID(id)
	}
	return Event{}, false
}

// VariableByName returns the first variable registered under name.
func (m *Model) VariableByName(name string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// NullEvent returns the id of the synthetic "null" completion event,
// registering it on first use. It mirrors the default Event the original
// reader constructs for an arrow with no `: EVENTSPEC` at all (name
// "null", incoming direction, no parameter) — a completion transition is
// only legal when its target is "final", which the Semantic Analyzer
// checks separately.
func (m *Model) NullEvent() int {
	if id, ok := m.eventIndex.Get(NullEventName); ok {
		return id
	}
	return m.AddEvent(Event{Name: NullEventName, Direction: DirIncoming})
}

// TransitionsFrom returns, in declaration order, every transition whose
// source is stateID.
func (m *Model) TransitionsFrom(stateID int) []Transition {
	var out []Transition
	for _, t := range m.Transitions {
		if t.Source == stateID {
			out = append(out, t)
		}
	}
	return out
}

// Children returns the direct sub-states of parentID, excluding
// pseudostates, in declaration order.
func (m *Model) Children(parentID int) []State {
	var out []State
	for _, s := range m.States {
		if s.Parent == parentID && !s.IsPseudo() {
			out = append(out, s)
		}
	}
	return out
}

// InitialChild returns the "initial" pseudostate declared directly under
// parentID, if any.
func (m *Model) InitialChild(parentID int) (State, bool) {
	for _, s := range m.States {
		if s.Parent == parentID && s.Kind == StateInitial {
			return s, true
		}
	}
	return State{}, false
}

// DeclarationsOf returns the declarations on stateID of the given kind, in
// declaration order.
func (m *Model) DeclarationsOf(stateID int, kind DeclKind) []Declaration {
	var out []Declaration
	for _, d := range m.Declarations {
		if d.StateID == stateID && d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// EventsByDirection returns every non-time event with the given
// direction, in declaration order.
func (m *Model) EventsByDirection(dir EventDirection) []Event {
	var out []Event
	for _, e := range m.Events {
		if !e.IsTimeEvent && e.Direction == dir {
			out = append(out, e)
		}
	}
	return out
}

// TimeEvents returns every time event, in declaration order.
func (m *Model) TimeEvents() []Event {
	var out []Event
	for _, e := range m.Events {
		if e.IsTimeEvent {
			out = append(out, e)
		}
	}
	return out
}

// VariablesByVisibility returns every variable with the given visibility,
// in declaration order.
func (m *Model) VariablesByVisibility(vis Visibility) []Variable {
	var out []Variable
	for _, v := range m.Variables {
		if v.Visibility == vis {
			out = append(out, v)
		}
	}
	return out
}

// HasEntryStatement reports whether stateID has an explicit entry
// declaration or at least one outgoing time-event transition (in which
// case the emitter still synthesizes an entry function to arm the
// timer), mirroring the teacher's has_entry_statement.
func (m *Model) HasEntryStatement(stateID int) bool {
	if len(m.DeclarationsOf(stateID, DeclEntry)) > 0 {
		return true
	}
	for _, t := range m.TransitionsFrom(stateID) {
		if ev, ok := m.EventByID(t.Event); ok && ev.IsTimeEvent {
			return true
		}
	}
	return false
}

// HasExitStatement is the exit-side counterpart of HasEntryStatement.
func (m *Model) HasExitStatement(stateID int) bool {
	if len(m.DeclarationsOf(stateID, DeclExit)) > 0 {
		return true
	}
	for _, t := range m.TransitionsFrom(stateID) {
		if ev, ok := m.EventByID(t.Event); ok && ev.IsTimeEvent {
			return true
		}
	}
	return false
}

// TopInitial returns the single top-level initial pseudostate (parent 0),
// if one was declared.
func (m *Model) TopInitial() (State, bool) {
	return m.InitialChild(0)
}

// Counts below give total entity counts per kind, matching the Model
// Store contract of spec.md §4.3.
func (m *Model) StateCount() int       { return len(m.States) }
func (m *Model) EventCount() int       { return len(m.Events) }
func (m *Model) TransitionCount() int  { return len(m.Transitions) }
func (m *Model) VariableCount() int    { return len(m.Variables) }
func (m *Model) DeclarationCount() int { return len(m.Declarations) }
