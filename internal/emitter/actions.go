package emitter

import "github.com/hsmgen/plantgen/internal/model"

// emitActionFunctions writes artifact (11): one entry/exit action
// function per state that has an explicit entry/exit declaration or at
// least one outgoing time-event transition (HasEntryStatement /
// HasExitStatement already fold both cases together, per the teacher's
// has_entry_statement/has_exit_statement).
func (e *emitter) emitActionFunctions(w *writer) {
	machineType := e.s.ModelName()
	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		if e.m.HasEntryStatement(st.ID) {
			e.emitEntryAction(w, st, machineType)
			w.blank()
		}
		if e.m.HasExitStatement(st.ID) {
			e.emitExitAction(w, st, machineType)
			w.blank()
		}
	}
}

func (e *emitter) timeTransitionsFrom(st model.State) []model.Transition {
	var out []model.Transition
	for _, t := range e.m.TransitionsFrom(st.ID) {
		if ev, ok := e.m.EventByID(t.Event); ok && ev.IsTimeEvent {
			out = append(out, t)
		}
	}
	return out
}

func (e *emitter) emitEntryAction(w *writer, st model.State, machineType string) {
	w.printf("func (sm *%s) %s() {\n", machineType, e.s.StateEntryAction(st))
	w.indent++
	for _, d := range e.m.DeclarationsOf(st.ID, model.DeclEntry) {
		w.printf("%s\n", e.rewriteBody(d.Body))
	}
	for _, t := range e.timeTransitionsFrom(st) {
		ev, _ := e.m.EventByID(t.Event)
		w.printf("sm.timers.%s.Started = true\n", timerFieldName(ev))
		w.printf("sm.timers.%s.Periodic = %t\n", timerFieldName(ev), ev.IsPeriodic)
		w.printf("sm.timers.%s.TimeoutMs = %d\n", timerFieldName(ev), ev.ExpireTimeMs)
		w.printf("sm.timers.%s.ExpiryMs = sm.nowMs + %d\n", timerFieldName(ev), ev.ExpireTimeMs)
	}
	w.indent--
	w.printf("}\n")
}

func (e *emitter) emitExitAction(w *writer, st model.State, machineType string) {
	w.printf("func (sm *%s) %s() {\n", machineType, e.s.StateExitAction(st))
	w.indent++
	for _, d := range e.m.DeclarationsOf(st.ID, model.DeclExit) {
		w.printf("%s\n", e.rewriteBody(d.Body))
	}
	for _, t := range e.timeTransitionsFrom(st) {
		ev, _ := e.m.EventByID(t.Event)
		w.printf("sm.timers.%s.Started = false\n", timerFieldName(ev))
	}
	w.indent--
	w.printf("}\n")
}
