package parser

import (
	"testing"

	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLines(t *testing.T, lines []string) (*model.Model, *diagnostics.Sink) {
	t.Helper()
	diag := diagnostics.NewSink()
	m := Parse(lines, diag)
	return m, diag
}

var pluginLines = []string{
	"@startuml",
	"header",
	"model Plugin",
	"private var canGetData : bool",
	"public var timeout : bool = false",
	"endheader",
	"[*] -> Wait",
	"Wait -> Wait : every 30 s / ${timeout} = true; ${canGetData} = false",
	"Wait -down-> Run : Start",
	"state Run {",
	"[*] -> CheckData / raise Checking",
	"CheckData : entry / raise Checked",
	"CheckData -> AddData : Checked",
	"state AddData {",
	"[*] -> Ask",
	"Ask : entry / raise More",
	"Ask : exit / raise Whatever",
	"Ask -> Wait : Abort / ${canGetData} = false",
	"Ask -> Run : Reset",
	"}",
	"AddData -down-> Write : More",
	"AddData : entry / ${canGetData} = true",
	"AddData : exit / ${canGetData} = false",
	"Write -> CheckData : after 1 s",
	"}",
	"Run : exit / raise Stopped",
	"@enduml",
}

func TestParsePluginModelNameAndVariables(t *testing.T) {
	m, diag := parseLines(t, pluginLines)
	// The plugin diagram re-declares two states after a transition already
	// created them and re-uses two events after a raise already registered
	// them; each of those is reported as a warning and nothing else is.
	var msgs []string
	for _, d := range diag.All() {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{
		"duplicate state declaration: Run",
		"duplicate event declaration: Checked",
		"duplicate state declaration: AddData",
		"duplicate event declaration: More",
	}, msgs)
	assert.Equal(t, "Plugin", m.Name)

	priv := m.VariablesByVisibility(model.Private)
	pub := m.VariablesByVisibility(model.Public)
	require.Len(t, priv, 1)
	require.Len(t, pub, 1)
	assert.Equal(t, "canGetData", priv[0].Name)
	assert.Equal(t, "timeout", pub[0].Name)
	assert.True(t, pub[0].HasInitial)
	assert.Equal(t, "false", pub[0].InitialValue)
}

func TestParsePluginStateHierarchy(t *testing.T) {
	m, _ := parseLines(t, pluginLines)

	run, ok := m.StateByName("Run")
	require.True(t, ok)
	assert.Equal(t, 0, run.Parent)

	addData, ok := m.StateByName("AddData")
	require.True(t, ok)
	assert.Equal(t, run.ID, addData.Parent)

	ask, ok := m.StateByName("Ask")
	require.True(t, ok)
	assert.Equal(t, addData.ID, ask.Parent)

	// AddData's closing brace must pop back to Run, not top: Write is a
	// sibling of AddData, not of Ask.
	write, ok := m.StateByName("Write")
	require.True(t, ok)
	assert.Equal(t, run.ID, write.Parent)
}

func TestParsePluginTimeEvent(t *testing.T) {
	m, _ := parseLines(t, pluginLines)

	wait, ok := m.StateByName("Wait")
	require.True(t, ok)

	timeEvents := m.TimeEvents()
	require.Len(t, timeEvents, 2)

	var everyWait *model.Event
	for i := range timeEvents {
		if timeEvents[i].IsPeriodic {
			everyWait = &timeEvents[i]
		}
	}
	require.NotNil(t, everyWait)
	assert.Equal(t, "Wait_every_30s", everyWait.Name)
	assert.Equal(t, uint64(30000), everyWait.ExpireTimeMs)

	transitions := m.TransitionsFrom(wait.ID)
	require.Len(t, transitions, 2) // self-loop timer + Start to Run
}

func TestParsePluginOneShotTimeEvent(t *testing.T) {
	m, _ := parseLines(t, pluginLines)

	write, ok := m.StateByName("Write")
	require.True(t, ok)
	transitions := m.TransitionsFrom(write.ID)
	require.Len(t, transitions, 1)

	ev, ok := m.EventByID(transitions[0].Event)
	require.True(t, ok)
	assert.True(t, ev.IsTimeEvent)
	assert.False(t, ev.IsPeriodic)
	assert.Equal(t, "Write_after_1s", ev.Name)
	assert.Equal(t, uint64(1000), ev.ExpireTimeMs)
}

func TestParsePluginTransitionActionIsNotAGuard(t *testing.T) {
	m, _ := parseLines(t, pluginLines)

	ask, ok := m.StateByName("Ask")
	require.True(t, ok)
	transitions := m.TransitionsFrom(ask.ID)
	require.Len(t, transitions, 2)

	abort := transitions[0]
	ev, ok := m.EventByID(abort.Event)
	require.True(t, ok)
	assert.Equal(t, "Abort", ev.Name)
	assert.False(t, abort.HasGuard)
}

func TestParsePluginEntryExitDeclarationsAndInternalEvents(t *testing.T) {
	m, _ := parseLines(t, pluginLines)

	ask, ok := m.StateByName("Ask")
	require.True(t, ok)
	entries := m.DeclarationsOf(ask.ID, model.DeclEntry)
	exits := m.DeclarationsOf(ask.ID, model.DeclExit)
	require.Len(t, entries, 1)
	require.Len(t, exits, 1)
	assert.Equal(t, "raise More", entries[0].Body)
	assert.Equal(t, "raise Whatever", exits[0].Body)

	more, ok := m.EventByName("More")
	require.True(t, ok)
	assert.Equal(t, model.DirInternal, more.Direction)

	whatever, ok := m.EventByName("Whatever")
	require.True(t, ok)
	assert.Equal(t, model.DirInternal, whatever.Direction)
}

func TestParseInitialAndFinalPseudostates(t *testing.T) {
	lines := []string{
		"@startuml",
		"[*] -> A",
		"A -> [*]",
		"@enduml",
	}
	m, diag := parseLines(t, lines)
	assert.Empty(t, diag.All())

	initial, ok := m.StateByName("initial")
	require.True(t, ok)
	assert.Equal(t, model.StateInitial, initial.Kind)

	final, ok := m.StateByName("final")
	require.True(t, ok)
	assert.Equal(t, model.StateFinal, final.Kind)
}

func TestParseDuplicateStateWarns(t *testing.T) {
	lines := []string{
		"@startuml",
		"state Wait",
		"state Wait",
		"@enduml",
	}
	m, diag := parseLines(t, lines)

	count := 0
	for _, s := range m.States {
		if s.Name == "Wait" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	found := false
	for _, d := range diag.All() {
		if d.Severity == diagnostics.InconsistencyWarning {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseDuplicateEventWarns(t *testing.T) {
	lines := []string{
		"@startuml",
		"header",
		"in event Start",
		"in event Start",
		"endheader",
		"@enduml",
	}
	_, diag := parseLines(t, lines)

	found := false
	for _, d := range diag.All() {
		if d.Severity == diagnostics.InconsistencyWarning {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseUnrecognizedLineIsSkippedWithDiagnostic(t *testing.T) {
	lines := []string{
		"@startuml",
		"this is not a recognized form",
		"[*] -> A",
		"@enduml",
	}
	m, diag := parseLines(t, lines)

	_, ok := m.StateByName("A")
	assert.True(t, ok, "parser keeps processing after a malformed line")

	found := false
	for _, d := range diag.All() {
		if d.Severity == diagnostics.SyntaxError {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseMissingTimeUnitWarns(t *testing.T) {
	lines := []string{
		"@startuml",
		"A -> A : every",
		"@enduml",
	}
	_, diag := parseLines(t, lines)

	found := false
	for _, d := range diag.All() {
		if d.Severity == diagnostics.SyntaxError {
			found = true
		}
	}
	assert.True(t, found)
}
