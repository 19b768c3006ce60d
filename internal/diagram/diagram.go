// Package diagram renders a frozen Model back out to PlantUML text, the
// round-trip counterpart to internal/parser: Parse builds a Model from
// diagram text, Render builds diagram text from a Model.
package diagram

import (
	"fmt"
	"strings"

	"github.com/hsmgen/plantgen/internal/model"
)

// Builder accumulates rendered PlantUML text for one Model, in the
// style of the teacher's DiagramBuilder: a recursive per-state dump
// indented by nesting depth, with every transition except a composite's
// initial-child arrow deferred into a second builder and appended only
// after every state block has closed (see dump for why transitions
// can't simply interleave with states).
type Builder struct {
	m        *model.Model
	bld      strings.Builder
	bldTrans strings.Builder
}

// Render builds a complete `@startuml ... @enduml` PlantUML document
// from m, suitable for feeding straight back into the Parser.
func Render(m *model.Model) string {
	b := &Builder{m: m}
	return b.build()
}

func (b *Builder) build() string {
	b.bld.WriteString("@startuml\n")

	// model name, imports and variables only round-trip through the
	// Parser's headerLine path, so they have to be re-wrapped in the
	// same header/endheader block it requires on the way in.
	if b.m.Name != "" || len(b.m.Imports) > 0 || len(b.m.Variables) > 0 {
		b.bld.WriteString("header\n")
		if b.m.Name != "" {
			fmt.Fprintf(&b.bld, "model %s\n", b.m.Name)
		}
		for _, imp := range b.m.Imports {
			if imp.Scope == model.ScopeGlobal {
				fmt.Fprintf(&b.bld, "import global %s\n", imp.Content)
			} else {
				fmt.Fprintf(&b.bld, "import %s\n", imp.Content)
			}
		}
		for _, v := range b.m.Variables {
			vis := "private"
			if v.Visibility == model.Public {
				vis = "public"
			}
			if v.HasInitial {
				fmt.Fprintf(&b.bld, "%s var %s : %s = %s\n", vis, v.Name, v.Type, v.InitialValue)
			} else {
				fmt.Fprintf(&b.bld, "%s var %s : %s\n", vis, v.Name, v.Type)
			}
		}
		b.bld.WriteString("endheader\n")
	}
	b.bld.WriteString("\n")

	if init, ok := b.m.TopInitial(); ok {
		b.dumpOwnTransitions(&b.bldTrans, 0, init)
	}
	for _, c := range b.choiceChildren(0) {
		b.dumpChoice(0, c)
	}
	for _, s := range b.m.Children(0) {
		b.dump(0, s)
	}

	b.bld.WriteString(b.bldTrans.String())
	b.bld.WriteString("\n@enduml\n")
	return b.bld.String()
}

// dump writes one state's block (for a composite: its own initial-child
// arrow, its choice pseudostates and its children, recursively, inside
// its braces, the way the teacher's dump does), then its entry/exit
// declarations, then defers its outgoing transitions to bldTrans. The
// initial-child arrow stays inside the braces so that the Parser creates
// that `initial` pseudostate under the same parent again. Other
// transitions are deferred rather than interleaved because a transition
// whose target lives in a state not yet dumped would otherwise force two
// incompatible traversal orders onto one pass.
func (b *Builder) dump(indent int, s model.State) {
	prefix := strings.Repeat("    ", indent)
	children := b.m.Children(s.ID)

	if len(children) == 0 {
		fmt.Fprintf(&b.bld, "%sstate %s\n", prefix, s.Name)
	} else {
		fmt.Fprintf(&b.bld, "%sstate %s {\n", prefix, s.Name)
		if init, ok := b.m.InitialChild(s.ID); ok {
			b.dumpOwnTransitions(&b.bld, indent+1, init)
		}
		for _, c := range b.choiceChildren(s.ID) {
			b.dumpChoice(indent+1, c)
		}
		for _, c := range children {
			b.dump(indent+1, c)
		}
		fmt.Fprintf(&b.bld, "%s}\n", prefix)
	}

	for _, d := range b.m.DeclarationsOf(s.ID, model.DeclEntry) {
		fmt.Fprintf(&b.bld, "%s%s : entry / %s\n", prefix, s.Name, d.Body)
	}
	for _, d := range b.m.DeclarationsOf(s.ID, model.DeclExit) {
		fmt.Fprintf(&b.bld, "%s%s : exit / %s\n", prefix, s.Name, d.Body)
	}
	for _, d := range b.m.DeclarationsOf(s.ID, model.DeclOnCycle) {
		fmt.Fprintf(&b.bld, "%s%s : oncycle / %s\n", prefix, s.Name, d.Body)
	}

	b.dumpOwnTransitions(&b.bldTrans, indent, s)
}

// choiceChildren returns the choice pseudostates declared directly
// under parentID, in declaration order.
func (b *Builder) choiceChildren(parentID int) []model.State {
	var out []model.State
	for _, s := range b.m.States {
		if s.Parent == parentID && s.Kind == model.StateChoice {
			out = append(out, s)
		}
	}
	return out
}

// dumpChoice renders a choice pseudostate's own `<<choice>>` state
// declaration (Parser.stateDecl only tags a state Choice when it sees
// this literal marker) followed by its guarded/default branches.
func (b *Builder) dumpChoice(indent int, c model.State) {
	prefix := strings.Repeat("    ", indent)
	fmt.Fprintf(&b.bld, "%sstate %s <<choice>>\n", prefix, c.Name)
	b.dumpOwnTransitions(&b.bldTrans, indent, c)
}

// dumpOwnTransitions renders every transition whose source is st
// (including, when st is an "initial" pseudostate, the super-step entry
// arrow) into out, one PlantUML arrow line per transition.
func (b *Builder) dumpOwnTransitions(out *strings.Builder, indent int, st model.State) {
	prefix := strings.Repeat("    ", indent)
	for _, t := range b.m.TransitionsFrom(st.ID) {
		tgt, ok := b.m.StateByID(t.Target)
		tgtName := "[*]"
		if ok && tgt.Kind != model.StateFinal {
			tgtName = tgt.Name
		}
		srcName := st.Name
		if st.Kind == model.StateInitial {
			srcName = "[*]"
		}
		spec := b.eventSpec(t)
		if spec == "" {
			fmt.Fprintf(out, "%s%s -> %s\n", prefix, srcName, tgtName)
		} else {
			fmt.Fprintf(out, "%s%s -> %s : %s\n", prefix, srcName, tgtName, spec)
		}
	}
}

// eventSpec renders a transition's `: EVENTSPEC` clause, or "" for a
// bare completion arrow (the null event). Time events re-derive a
// `after`/`every N unit` form from the stored millisecond count, always
// preferring whole minutes over seconds when the value divides evenly,
// and falling back to milliseconds when it is not a whole second count.
func (b *Builder) eventSpec(t model.Transition) string {
	ev, ok := b.m.EventByID(t.Event)
	if !ok || ev.Name == model.NullEventName {
		return guardSuffix("", t)
	}
	if ev.IsTimeEvent {
		kind := "after"
		if ev.IsPeriodic {
			kind = "every"
		}
		return guardSuffix(fmt.Sprintf("%s %s", kind, durationLiteral(ev.ExpireTimeMs)), t)
	}
	return guardSuffix(ev.Name, t)
}

func guardSuffix(spec string, t model.Transition) string {
	if !t.HasGuard {
		return spec
	}
	if spec == "" {
		return fmt.Sprintf("[%s]", t.Guard)
	}
	return fmt.Sprintf("%s [%s]", spec, t.Guard)
}

func durationLiteral(ms uint64) string {
	if ms > 0 && ms%60000 == 0 {
		return fmt.Sprintf("%d min", ms/60000)
	}
	if ms%1000 != 0 {
		return fmt.Sprintf("%d ms", ms)
	}
	return fmt.Sprintf("%d s", ms/1000)
}
