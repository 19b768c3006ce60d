package emitter

import "github.com/hsmgen/plantgen/internal/model"

// emitReactFunctions writes artifact (10): one react per non-pseudostate,
// in the parent-first shape of spec §4.6's per-state react contract.
func (e *emitter) emitReactFunctions(w *writer) {
	machineType := e.s.ModelName()
	eventType := machineType + "_Event"

	for _, st := range e.m.States {
		if st.IsPseudo() {
			continue
		}
		e.emitReact(w, st, machineType, eventType)
		w.blank()
	}

	e.emitExitUpTo(w, machineType)
}

func (e *emitter) emitReact(w *writer, st model.State, machineType, eventType string) {
	fn := e.s.StateReact(st)
	w.printf("func (sm *%s) %s(ev %s, tryTransition bool) bool {\n", machineType, fn, eventType)
	w.indent++
	w.printf("didTransition := tryTransition\n")
	w.printf("if tryTransition {\n")
	w.indent++

	parent, hasParent := e.m.StateByID(st.Parent)
	ownIndent := 0
	if hasParent && !parent.IsPseudo() {
		w.printf("if !sm.%s(ev, tryTransition) {\n", e.s.StateReact(parent))
		w.indent++
		ownIndent++
	}

	e.emitOwnTransitions(w, st)

	for ; ownIndent > 0; ownIndent-- {
		w.indent--
		w.printf("}\n")
	}

	w.indent--
	w.printf("}\n")
	w.printf("return didTransition\n")
	w.indent--
	w.printf("}\n")
}

// emitOwnTransitions writes the declaration-ordered guard/event match
// chain for st's own outgoing transitions, following the exit / action /
// entry sequence of spec §4.4. A transition with no match at all clears
// didTransition, matching the contract that a child only reports "no
// transition taken" once every ancestor has also declined.
func (e *emitter) emitOwnTransitions(w *writer, st model.State) {
	var dispatchable []model.Transition
	for _, t := range e.m.TransitionsFrom(st.ID) {
		// A null-event transition out of an ordinary state targets
		// "final" (enforced by Validate) and marks this state as one
		// that quietly completes when entered rather than one that
		// waits on a triggering event — the grounding source emits no
		// dispatch code for it at all (its runtime react branch only
		// ever reaches a null transition through an Initial pseudostate,
		// which is resolved at entry time and never appears here).
		if ev, ok := e.m.EventByID(t.Event); ok && ev.Name == model.NullEventName {
			continue
		}
		dispatchable = append(dispatchable, t)
	}

	if len(dispatchable) == 0 {
		w.printf("didTransition = false\n")
		return
	}

	w.printf("switch {\n")
	for _, t := range dispatchable {
		ev, _ := e.m.EventByID(t.Event)
		w.printf("case %s:\n", e.matchCondition(ev, t))
		w.indent++
		e.emitTransitionBody(w, st, t)
		w.indent--
	}
	w.printf("default:\n")
	w.indent++
	w.printf("didTransition = false\n")
	w.indent--
	w.printf("}\n")
}

func (e *emitter) matchCondition(ev model.Event, t model.Transition) string {
	cond := "ev.ID == " + e.s.EventIDConst(ev)
	if t.HasGuard {
		cond += " && (" + e.rewriteGuard(t.Guard) + ")"
	}
	return cond
}

// emitTransitionBody writes the exit/action/entry sequence for a single
// matched transition, then marks the LCA-bounded exit walk, literal
// action rewrite, and static entry descent in that order (spec §8
// invariant 4: exit textually precedes action precedes entry).
func (e *emitter) emitTransitionBody(w *writer, src model.State, t model.Transition) {
	target, ok := e.m.StateByID(t.Target)
	if !ok {
		e.diag.Internal(nil, "transition from %s references unresolved target id %d", src.Name, t.Target)
		w.printf("didTransition = false\n")
		return
	}

	lca := e.a.LCA(src.ID, target.ID)
	w.printf("sm.exitUpTo(%s)\n", e.lcaBoundaryExpr(lca))

	for _, action := range t.Actions {
		w.printf("%s\n", e.rewriteBody(action))
	}

	entryPath := e.a.EntryPath(lca, target.ID)
	e.emitEntrySequence(w, entryPath, true)
}

// lcaBoundaryExpr returns the Go expression for an LCA state id, using
// the enum's zero-value sentinel when the LCA is the virtual top.
func (e *emitter) lcaBoundaryExpr(lca int) string {
	if lca == 0 {
		return e.stateNoneConst()
	}
	st, ok := e.m.StateByID(lca)
	if !ok {
		return e.stateNoneConst()
	}
	return e.s.StateEnumValue(st)
}

// emitEntrySequence writes a static (generation-time-known) sequence of
// entry calls along path, outermost first. If path ends at a Choice
// pseudostate, control is handed to emitChoiceEntry instead of assigning
// a final state, since a choice is never itself a resting state.
func (e *emitter) emitEntrySequence(w *writer, path []int, trace bool) {
	for _, id := range path {
		st, ok := e.m.StateByID(id)
		if !ok {
			continue
		}
		if st.Kind == model.StateChoice {
			e.emitChoiceEntry(w, st.ID)
			return
		}
		if e.m.HasEntryStatement(st.ID) {
			w.printf("sm.%s()\n", e.s.StateEntryAction(st))
		}
		if e.cfg.Tracing && trace {
			w.printf("sm.%s(%s)\n", e.s.TraceStateEnter(), e.s.StateEnumValue(st))
		}
		w.printf("sm.state = %s\n", e.s.StateEnumValue(st))
	}
}

// emitChoiceEntry resolves a choice pseudostate reached mid-entry:
// guarded branches in declaration order, exactly one default, each
// continuing with its own target's entry descent (recursing again if
// that descent also ends at a nested choice).
func (e *emitter) emitChoiceEntry(w *writer, choiceID int) {
	choice, _ := e.m.StateByID(choiceID)
	guarded, def, ok := e.a.ChoiceBranches(choiceID)
	if !ok {
		e.diag.Internal(nil, "choice %s has no unique default branch", choice.Name)
		return
	}

	w.printf("switch {\n")
	for _, t := range guarded {
		w.printf("case %s:\n", e.rewriteGuard(t.Guard))
		w.indent++
		e.emitEntrySequence(w, e.a.FindEntryPath(t.Target), true)
		w.indent--
	}
	w.printf("default:\n")
	w.indent++
	e.emitEntrySequence(w, e.a.FindEntryPath(def.Target), true)
	w.indent--
	w.printf("}\n")
}

// emitExitUpTo writes the single shared runtime exit-walk helper every
// transition body calls (see emitRuntimeTables for why this replaces the
// original's per-leaf static unrolling).
func (e *emitter) emitExitUpTo(w *writer, machineType string) {
	enumType := e.s.StateEnumType()
	w.printf("func (sm *%s) exitUpTo(boundary %s) {\n", machineType, enumType)
	w.indent++
	w.printf("for sm.state != boundary {\n")
	w.indent++
	w.printf("if exit, ok := %sExitActions[sm.state]; ok {\n", machineType)
	w.indent++
	w.printf("exit(sm)\n")
	w.indent--
	w.printf("}\n")
	if e.cfg.Tracing {
		w.printf("sm.%s(sm.state)\n", e.s.TraceStateExit())
	}
	w.printf("sm.state = %sParentOf[sm.state]\n", machineType)
	w.indent--
	w.printf("}\n")
	w.indent--
	w.printf("}\n")
}
