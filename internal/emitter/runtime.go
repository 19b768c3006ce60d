package emitter

import "github.com/hsmgen/plantgen/internal/model"

// emitRuntimeTables writes the state-hierarchy lookup tables the exit
// walk at runtime needs. The original generator instead unrolls, at
// generation time, a static if/else chain keyed on "state == X" per
// leaf that could be active when a superstate's own transition fires
// (see parseChildExits in the source this was distilled from). Since
// LCA(S, T) is invariant to which descendant of S is actually current
// whenever S's own transition is the one that matched — S lies on every
// one of its descendants' ancestor chains by construction — a single
// shared runtime loop from the true current state up to that
// compile-time LCA produces identical exit calls in identical order
// without the combinatorial unrolling. Table-driven dispatch over a
// closed enum is the idiomatic Go shape for this, not a code smell:
// unlike the original's target language, Go gives us first-class
// function values and map literals to express it directly.
func (e *emitter) emitRuntimeTables(w *writer) {
	enumType := e.s.StateEnumType()
	machineType := e.s.ModelName()

	w.printf("var %sParentOf = map[%s]%s{\n", machineType, enumType, enumType)
	w.indent++
	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		parent, ok := e.m.StateByID(st.Parent)
		if !ok || parent.IsPseudo() {
			continue
		}
		w.printf("%s: %s,\n", e.s.StateEnumValue(st), e.s.StateEnumValue(parent))
	}
	w.indent--
	w.printf("}\n")
	w.blank()

	// The exit and react tables are filled in init rather than by
	// initializer expressions: their functions reach runCycle, which reads
	// these same tables, and Go rejects a package-level variable whose
	// initializer refers back to itself.
	eventType := machineType + "_Event"
	w.printf("var %sExitActions map[%s]func(*%s)\n", machineType, enumType, machineType)
	w.printf("var %sReactOf map[%s]func(*%s, %s, bool) bool\n", machineType, enumType, machineType, eventType)
	w.blank()
	w.printf("func init() {\n")
	w.indent++
	w.printf("%sExitActions = map[%s]func(*%s){\n", machineType, enumType, machineType)
	w.indent++
	for _, st := range e.m.States {
		if st.IsPseudo() || !e.m.HasExitStatement(st.ID) {
			continue
		}
		w.printf("%s: (*%s).%s,\n", e.s.StateEnumValue(st), machineType, e.s.StateExitAction(st))
	}
	w.indent--
	w.printf("}\n")

	w.printf("%sReactOf = map[%s]func(*%s, %s, bool) bool{\n", machineType, enumType, machineType, eventType)
	w.indent++
	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		w.printf("%s: (*%s).%s,\n", e.s.StateEnumValue(st), machineType, e.s.StateReact(st))
	}
	w.indent--
	w.printf("}\n")
	w.indent--
	w.printf("}\n")
}

// emitMachineType writes artifact (7): the state-machine type.
func (e *emitter) emitMachineType(w *writer) {
	machineType := e.s.ModelName()
	eventType := machineType + "_Event"
	outEventType := machineType + "_OutEvent"
	hasTimers := len(e.m.TimeEvents()) > 0

	w.printf("// %s is the generated run-to-completion state machine. It is\n", machineType)
	w.printf("// owned by a single caller and is not safe for concurrent use.\n")
	w.printf("type %s struct {\n", machineType)
	w.indent++
	w.printf("state %s\n", e.s.StateEnumType())
	w.printf("queue    []%s\n", eventType)
	w.printf("outQueue []%s\n", outEventType)
	if hasTimers {
		w.printf("timers   %s_Timers\n", machineType)
		w.printf("nowMs    uint64\n")
	}
	w.printf("vars %s_Vars\n", machineType)
	if e.cfg.Tracing {
		w.printf("traceEnter func(%s)\n", e.s.StateEnumType())
		w.printf("traceExit  func(%s)\n", e.s.StateEnumType())
	}
	w.indent--
	w.printf("}\n")
	w.blank()

	if e.cfg.Tracing {
		w.printf("func (sm *%s) SetTraceEnterCallback(f func(%s)) { sm.traceEnter = f }\n", machineType, e.s.StateEnumType())
		w.printf("func (sm *%s) SetTraceExitCallback(f func(%s))  { sm.traceExit = f }\n", machineType, e.s.StateEnumType())
		w.blank()
		w.printf("func (sm *%s) %s(st %s) {\n", machineType, e.s.TraceStateEnter(), e.s.StateEnumType())
		w.indent++
		w.printf("if sm.traceEnter != nil {\n")
		w.indent++
		w.printf("sm.traceEnter(st)\n")
		w.indent--
		w.printf("}\n")
		w.indent--
		w.printf("}\n")
		w.blank()
		w.printf("func (sm *%s) %s(st %s) {\n", machineType, e.s.TraceStateExit(), e.s.StateEnumType())
		w.indent++
		w.printf("if sm.traceExit != nil {\n")
		w.indent++
		w.printf("sm.traceExit(st)\n")
		w.indent--
		w.printf("}\n")
		w.indent--
		w.printf("}\n")
		w.blank()
	}

	for _, v := range e.m.VariablesByVisibility(model.Public) {
		w.printf("func (sm *%s) %s() %s { return sm.vars.Public.%s }\n",
			machineType, e.s.VariableGetter(v), goType(v.Type), capitalizeIdent(v.Name))
	}
}

// emitInit writes artifact (8): the constructor/initializer, running
// the top-level super-step entry path found by the Semantic Analyzer.
func (e *emitter) emitInit(w *writer) {
	machineType := e.s.ModelName()

	w.printf("func New%s() *%s {\n", machineType, machineType)
	w.indent++
	w.printf("sm := &%s{}\n", machineType)
	for _, v := range e.m.Variables {
		if !v.HasInitial {
			continue
		}
		partition := "Private"
		if v.Visibility == model.Public {
			partition = "Public"
		}
		w.printf("sm.vars.%s.%s = %s\n", partition, capitalizeIdent(v.Name), v.InitialValue)
	}
	w.blank()

	path := e.a.FindInitialPath()
	if len(path) == 0 {
		e.diag.Internal(nil, "no top-level initial transition found for model %s", machineType)
		w.printf("return sm\n")
		w.indent--
		w.printf("}\n")
		return
	}
	e.emitEntrySequence(w, path, true)
	w.printf("return sm\n")
	w.indent--
	w.printf("}\n")
}
