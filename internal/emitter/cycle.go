package emitter

import "github.com/hsmgen/plantgen/internal/model"

// emitRunCycle writes artifact (9): the top-level run cycle of spec
// §4.6's run cycle contract — drain the queue FIFO, dispatch each event
// to the current state's react via the table emitRuntimeTables built,
// never re-entering the drain loop for the same event.
func (e *emitter) emitRunCycle(w *writer) {
	machineType := e.s.ModelName()
	w.printf("func (sm *%s) runCycle() {\n", machineType)
	w.indent++
	w.printf("for len(sm.queue) > 0 {\n")
	w.indent++
	w.printf("ev := sm.queue[0]\n")
	w.printf("sm.queue = sm.queue[1:]\n")
	w.printf("if react, ok := %sReactOf[sm.state]; ok {\n", machineType)
	w.indent++
	w.printf("react(sm, ev, true)\n")
	w.indent--
	w.printf("}\n")
	w.indent--
	w.printf("}\n")
	w.indent--
	w.printf("}\n")
}

// emitRaiseFunctions writes artifact (12): one raise function per
// incoming/internal/outgoing event. Incoming and internal raises enqueue
// and immediately drain (run-to-completion); outgoing raises only
// append to the out-queue, read back by the caller via
// IsOutEventRaised.
func (e *emitter) emitRaiseFunctions(w *writer) {
	machineType := e.s.ModelName()
	eventType := machineType + "_Event"
	outEventType := machineType + "_OutEvent"

	for _, ev := range e.m.EventsByDirection(model.DirIncoming) {
		e.emitQueuedRaise(w, machineType, eventType, ev)
		w.blank()
	}
	for _, ev := range e.m.EventsByDirection(model.DirInternal) {
		e.emitQueuedRaise(w, machineType, eventType, ev)
		w.blank()
	}
	for _, ev := range e.m.EventsByDirection(model.DirOutgoing) {
		e.emitOutgoingRaise(w, machineType, outEventType, ev)
		w.blank()
	}

	w.printf("func (sm *%s) IsOutEventRaised(out *%s) bool {\n", machineType, outEventType)
	w.indent++
	w.printf("if len(sm.outQueue) == 0 {\n")
	w.indent++
	w.printf("return false\n")
	w.indent--
	w.printf("}\n")
	w.printf("*out = sm.outQueue[0]\n")
	w.printf("sm.outQueue = sm.outQueue[1:]\n")
	w.printf("return true\n")
	w.indent--
	w.printf("}\n")
}

func (e *emitter) emitQueuedRaise(w *writer, machineType, eventType string, ev model.Event) {
	fn := e.s.EventRaise(ev)
	if ev.RequireParam {
		w.printf("func (sm *%s) %s(payload %s) {\n", machineType, fn, goType(ev.ParameterType))
		w.indent++
		w.printf("sm.queue = append(sm.queue, %s{ID: %s, Payload: payload})\n", eventType, e.s.EventIDConst(ev))
	} else {
		w.printf("func (sm *%s) %s() {\n", machineType, fn)
		w.indent++
		w.printf("sm.queue = append(sm.queue, %s{ID: %s})\n", eventType, e.s.EventIDConst(ev))
	}
	w.printf("sm.runCycle()\n")
	w.indent--
	w.printf("}\n")
}

func (e *emitter) emitOutgoingRaise(w *writer, machineType, outEventType string, ev model.Event) {
	fn := e.s.EventRaise(ev)
	if ev.RequireParam {
		w.printf("func (sm *%s) %s(payload %s) {\n", machineType, fn, goType(ev.ParameterType))
		w.indent++
		w.printf("sm.outQueue = append(sm.outQueue, %s{ID: %s, Payload: payload})\n", outEventType, e.s.EventIDConst(ev))
	} else {
		w.printf("func (sm *%s) %s() {\n", machineType, fn)
		w.indent++
		w.printf("sm.outQueue = append(sm.outQueue, %s{ID: %s})\n", outEventType, e.s.EventIDConst(ev))
	}
	w.indent--
	w.printf("}\n")
}

// emitTick writes artifact (13): the time-event lifecycle of spec
// §4.6's time-event lifecycle note. Only emitted when the model
// declares at least one time event.
func (e *emitter) emitTick(w *writer) {
	timers := e.m.TimeEvents()
	if len(timers) == 0 {
		return
	}

	machineType := e.s.ModelName()
	eventType := machineType + "_Event"
	w.printf("func (sm *%s) %s(deltaMs uint64) {\n", machineType, e.s.TimeTick())
	w.indent++
	w.printf("sm.nowMs += deltaMs\n")
	for _, ev := range timers {
		field := timerFieldName(ev)
		w.printf("if sm.timers.%s.Started && sm.timers.%s.ExpiryMs <= sm.nowMs {\n", field, field)
		w.indent++
		w.printf("sm.queue = append(sm.queue, %s{ID: %s})\n", eventType, e.s.EventIDConst(ev))
		w.printf("if sm.timers.%s.Periodic {\n", field)
		w.indent++
		w.printf("sm.timers.%s.ExpiryMs += sm.timers.%s.TimeoutMs\n", field, field)
		w.indent--
		w.printf("} else {\n")
		w.indent++
		w.printf("sm.timers.%s.Started = false\n", field)
		w.indent--
		w.printf("}\n")
		w.indent--
		w.printf("}\n")
	}
	w.printf("sm.runCycle()\n")
	w.indent--
	w.printf("}\n")
}
