package semantic

import (
	"testing"

	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPlugin constructs the same hierarchy as testdata/plugin.puml by
// hand, so the Analyzer can be tested without depending on the parser.
func buildPlugin(t *testing.T) (*model.Model, map[string]int) {
	t.Helper()
	m := model.New()
	m.SetName("plugin")

	ids := map[string]int{}
	add := func(name string, parent int, kind model.StateKind) int {
		id := m.AddState(name, parent, kind)
		ids[name] = id
		return id
	}

	wait := add("Wait", 0, model.StateNormal)
	run := add("Run", 0, model.StateNormal)
	checkData := add("CheckData", run, model.StateNormal)
	addData := add("AddData", run, model.StateNormal)
	ask := add("Ask", addData, model.StateNormal)
	write := add("Write", run, model.StateNormal)

	topInit := add("initial", 0, model.StateInitial)
	runInit := add("initial", run, model.StateInitial)
	addDataInit := add("initial", addData, model.StateInitial)

	start := m.AddEvent(model.Event{Name: "Start", Direction: model.DirIncoming})
	abort := m.AddEvent(model.Event{Name: "Abort", Direction: model.DirIncoming})
	reset := m.AddEvent(model.Event{Name: "Reset", Direction: model.DirIncoming})
	checked := m.AddEvent(model.Event{Name: "Checked", Direction: model.DirInternal})
	more := m.AddEvent(model.Event{Name: "More", Direction: model.DirInternal})

	m.AddTransition(model.Transition{Source: topInit, Target: wait, Event: m.NullEvent()})
	m.AddTransition(model.Transition{Source: wait, Target: run, Event: start})
	m.AddTransition(model.Transition{Source: runInit, Target: checkData, Event: m.NullEvent()})
	m.AddTransition(model.Transition{Source: checkData, Target: addData, Event: checked})
	m.AddTransition(model.Transition{Source: addDataInit, Target: ask, Event: m.NullEvent()})
	m.AddTransition(model.Transition{Source: ask, Target: wait, Event: abort})
	m.AddTransition(model.Transition{Source: ask, Target: run, Event: reset})
	m.AddTransition(model.Transition{Source: addData, Target: write, Event: more})

	return m, ids
}

func TestLCASameParent(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	lca := a.LCA(ids["CheckData"], ids["AddData"])
	assert.Equal(t, ids["Run"], lca)
}

func TestLCAAcrossTop(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	lca := a.LCA(ids["Ask"], ids["Wait"])
	assert.Equal(t, 0, lca)
}

func TestLCASymmetric(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	assert.Equal(t, a.LCA(ids["Ask"], ids["Write"]), a.LCA(ids["Write"], ids["Ask"]))
}

func TestLCASelfTransitionIsParent(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	assert.Equal(t, ids["Run"], a.LCA(ids["CheckData"], ids["CheckData"]))
}

func TestExitPathAbortFromAsk(t *testing.T) {
	// spec.md scenario 5: Abort from Ask exits Ask, AddData, Run
	// (innermost first) before entering Wait.
	m, ids := buildPlugin(t)
	a := New(m)
	lca := a.LCA(ids["Ask"], ids["Wait"])
	exits := a.ExitPath(ids["Ask"], lca)
	assert.Equal(t, []int{ids["Ask"], ids["AddData"], ids["Run"]}, exits)
}

func TestEntryPathStartIntoRun(t *testing.T) {
	// spec.md scenario 3: Start from Wait enters Run then CheckData.
	m, ids := buildPlugin(t)
	a := New(m)
	lca := a.LCA(ids["Wait"], ids["Run"])
	assert.Equal(t, 0, lca)
	entry := a.EntryPath(lca, ids["Run"])
	assert.Equal(t, []int{ids["Run"], ids["CheckData"]}, entry)
}

func TestFindInitialPath(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	path := a.FindInitialPath()
	assert.Equal(t, []int{ids["Wait"]}, path)
}

func TestFindEntryPathIntoComposite(t *testing.T) {
	m, ids := buildPlugin(t)
	a := New(m)
	path := a.FindEntryPath(ids["AddData"])
	assert.Equal(t, []int{ids["AddData"], ids["Ask"]}, path)
}

func TestChoiceBranchesRequiresExactlyOneDefault(t *testing.T) {
	m := model.New()
	c := m.AddState("Decide", 0, model.StateChoice)
	a1 := m.AddState("A", 0, model.StateNormal)
	b1 := m.AddState("B", 0, model.StateNormal)
	ev := m.NullEvent()

	m.AddTransition(model.Transition{Source: c, Target: a1, Event: ev, HasGuard: true, Guard: "x"})
	m.AddTransition(model.Transition{Source: c, Target: b1, Event: ev})

	a := New(m)
	guarded, def, ok := a.ChoiceBranches(c)
	require.True(t, ok)
	assert.Len(t, guarded, 1)
	assert.Equal(t, b1, def.Target)
}

func TestChoiceBranchesFailsWithoutDefault(t *testing.T) {
	m := model.New()
	c := m.AddState("Decide", 0, model.StateChoice)
	a1 := m.AddState("A", 0, model.StateNormal)
	ev := m.NullEvent()
	m.AddTransition(model.Transition{Source: c, Target: a1, Event: ev, HasGuard: true, Guard: "x"})

	a := New(m)
	_, _, ok := a.ChoiceBranches(c)
	assert.False(t, ok)
}

func TestValidateFlagsChoiceWithoutDefault(t *testing.T) {
	m := model.New()
	c := m.AddState("Decide", 0, model.StateChoice)
	a1 := m.AddState("A", 0, model.StateNormal)
	ev := m.NullEvent()
	m.AddTransition(model.Transition{Source: c, Target: a1, Event: ev, HasGuard: true, Guard: "x"})

	diag := diagnostics.NewSink()
	Validate(m, diag)
	assert.True(t, diag.HasErrors())
}

func TestValidateFlagsFinalWithOutgoing(t *testing.T) {
	m := model.New()
	final := m.AddState("final", 0, model.StateFinal)
	other := m.AddState("Other", 0, model.StateNormal)
	m.AddTransition(model.Transition{Source: final, Target: other, Event: m.NullEvent()})

	diag := diagnostics.NewSink()
	Validate(m, diag)
	assert.True(t, diag.HasErrors())
}

func TestValidatePassesOnWellFormedPlugin(t *testing.T) {
	m, _ := buildPlugin(t)
	diag := diagnostics.NewSink()
	Validate(m, diag)
	assert.False(t, diag.HasErrors())
}
