package emitter

import "github.com/hsmgen/plantgen/internal/model"

// emitStateEnum writes artifact (1): the state enumeration of every
// non-pseudostate, in declaration order.
func (e *emitter) emitStateEnum(w *writer) {
	enumType := e.s.StateEnumType()
	w.printf("type %s int\n", enumType)
	w.blank()
	w.printf("const (\n")
	w.indent++
	// The zero value stands for "no enclosing state" — the virtual root
	// every top-level state's parent lookup resolves to, so the runtime
	// exit walk (see emitRuntimeTables) has a real sentinel to stop at
	// instead of aliasing onto whichever real state iota would otherwise
	// assign to 0.
	w.printf("%s %s = iota\n", e.stateNoneConst(), enumType)
	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		w.printf("%s\n", e.s.StateEnumValue(st))
	}
	w.indent--
	w.printf(")\n")
	w.blank()
	if e.cfg.Tracing {
		e.emitStateNameFunc(w, enumType)
	}
}

// stateNoneConst is the zero-value sentinel of the state enum.
func (e *emitter) stateNoneConst() string {
	return e.s.StateEnumType() + "_none"
}

// emitStateNameFunc writes the state_name(State) -> string helper spec
// §6 requires whenever tracing is enabled.
func (e *emitter) emitStateNameFunc(w *writer, enumType string) {
	w.printf("func (s %s) String() string {\n", enumType)
	w.indent++
	w.printf("switch s {\n")
	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		w.printf("case %s:\n", e.s.StateEnumValue(st))
		w.indent++
		w.printf("return %q\n", st.Name)
		w.indent--
	}
	w.printf("default:\n")
	w.indent++
	w.printf("return \"unknown\"\n")
	w.indent--
	w.printf("}\n")
	w.indent--
	w.printf("}\n")
}

// emitEventEnums writes artifacts (2)-(4): the incoming/internal/time
// event-id enumeration, the tagged incoming event payload, and the
// separate out-event id enumeration plus its payload.
func (e *emitter) emitEventEnums(w *writer) {
	enumType := e.s.ModelName() + "_EventId"
	w.printf("type %s int\n", enumType)
	w.blank()
	w.printf("const (\n")
	first := true
	for _, ev := range e.m.Events {
		if ev.Name == model.NullEventName || ev.Direction == model.DirOutgoing {
			continue
		}
		w.indent++
		if first {
			w.printf("%s %s = iota\n", e.s.EventIDConst(ev), enumType)
			first = false
		} else {
			w.printf("%s\n", e.s.EventIDConst(ev))
		}
		w.indent--
	}
	w.printf(")\n")
	w.blank()

	payloadType := e.s.ModelName() + "_Event"
	w.printf("// %s pairs an event id with its payload, when the event\n", payloadType)
	w.printf("// declares a parameter type; events with no parameter leave\n")
	w.printf("// Payload nil.\n")
	w.printf("type %s struct {\n", payloadType)
	w.indent++
	w.printf("ID      %s\n", enumType)
	w.printf("Payload any\n")
	w.indent--
	w.printf("}\n")
	w.blank()

	outEnumType := e.s.ModelName() + "_OutEventId"
	w.printf("type %s int\n", outEnumType)
	w.blank()
	w.printf("const (\n")
	first = true
	for _, ev := range e.m.EventsByDirection(model.DirOutgoing) {
		w.indent++
		if first {
			w.printf("%s %s = iota\n", e.s.EventIDConst(ev), outEnumType)
			first = false
		} else {
			w.printf("%s\n", e.s.EventIDConst(ev))
		}
		w.indent--
	}
	w.printf(")\n")
	w.blank()

	outPayloadType := e.s.ModelName() + "_OutEvent"
	w.printf("type %s struct {\n", outPayloadType)
	w.indent++
	w.printf("ID      %s\n", outEnumType)
	w.printf("Payload any\n")
	w.indent--
	w.printf("}\n")
}

// emitTimerTypes writes artifact (5): one timer record per declared time
// event, keyed by the event's own identifier.
func (e *emitter) emitTimerTypes(w *writer) {
	timers := e.m.TimeEvents()
	recordType := e.s.ModelName() + "_Timer"
	w.printf("type %s struct {\n", recordType)
	w.indent++
	w.printf("Started  bool\n")
	w.printf("Periodic bool\n")
	w.printf("TimeoutMs uint64\n")
	w.printf("ExpiryMs  uint64\n")
	w.indent--
	w.printf("}\n")

	if len(timers) == 0 {
		return
	}

	w.blank()
	timersType := e.s.ModelName() + "_Timers"
	w.printf("type %s struct {\n", timersType)
	w.indent++
	for _, ev := range timers {
		w.printf("%s %s\n", timerFieldName(ev), recordType)
	}
	w.indent--
	w.printf("}\n")
}

func timerFieldName(ev model.Event) string {
	return capitalizeIdent(ev.Name)
}

// emitVariableTypes writes artifact (6): the variable aggregate, split
// into private and public partitions so the emitted getter surface of
// spec §6 only has to walk the public one.
func (e *emitter) emitVariableTypes(w *writer) {
	privType := e.s.ModelName() + "_PrivateVars"
	pubType := e.s.ModelName() + "_PublicVars"
	varsType := e.s.ModelName() + "_Vars"

	e.emitVarStruct(w, privType, e.m.VariablesByVisibility(model.Private))
	w.blank()
	e.emitVarStruct(w, pubType, e.m.VariablesByVisibility(model.Public))
	w.blank()

	w.printf("type %s struct {\n", varsType)
	w.indent++
	w.printf("Private %s\n", privType)
	w.printf("Public  %s\n", pubType)
	w.indent--
	w.printf("}\n")
}

func (e *emitter) emitVarStruct(w *writer, typeName string, vars []model.Variable) {
	w.printf("type %s struct {\n", typeName)
	w.indent++
	for _, v := range vars {
		w.printf("%s %s\n", capitalizeIdent(v.Name), goType(v.Type))
	}
	w.indent--
	w.printf("}\n")
}

// goType maps a declared variable type token to a Go type. Diagram
// authors write the model's own primitive vocabulary (bool, int,
// string, float); anything else passes through unchanged so a
// diagram-declared struct/alias name still compiles against
// hand-written supporting code the generated file is compiled
// alongside.
func goType(t string) string {
	switch t {
	case "bool", "int", "string", "float64", "float32", "uint64", "int64":
		return t
	case "float":
		return "float64"
	default:
		return t
	}
}

func capitalizeIdent(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] = b[0] - 'a' + 'A'
	}
	return string(b)
}
