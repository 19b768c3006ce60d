package styler

import (
	"testing"

	"github.com/hsmgen/plantgen/internal/model"
	"github.com/stretchr/testify/assert"
)

func buildRunAddDataAsk(m *model.Model) (run, addData, ask model.State) {
	runID := m.AddState("Run", 0, model.StateNormal)
	addDataID := m.AddState("AddData", runID, model.StateNormal)
	askID := m.AddState("Ask", addDataID, model.StateNormal)
	run, _ = m.StateByID(runID)
	addData, _ = m.StateByID(addDataID)
	ask, _ = m.StateByID(askID)
	return
}

func TestBaseNestedMode(t *testing.T) {
	m := model.New()
	m.SetName("plugin")
	_, _, ask := buildRunAddDataAsk(m)

	s := New(m, Config{SimpleNames: false})
	assert.Equal(t, "Run_AddData_Ask", s.Base(ask))
}

func TestBaseSimpleMode(t *testing.T) {
	m := model.New()
	m.SetName("plugin")
	_, _, ask := buildRunAddDataAsk(m)

	s := New(m, Config{SimpleNames: true})
	assert.Equal(t, "Ask", s.Base(ask))
}

func TestStateEnumValue(t *testing.T) {
	m := model.New()
	m.SetName("plugin")
	run, _, _ := buildRunAddDataAsk(m)

	s := New(m, Config{})
	assert.Equal(t, "Plugin_State", s.StateEnumType())
	assert.Equal(t, "Plugin_State_Run", s.StateEnumValue(run))
}

func TestFunctionNames(t *testing.T) {
	m := model.New()
	m.SetName("plugin")
	_, addData, _ := buildRunAddDataAsk(m)

	s := New(m, Config{})
	assert.Equal(t, "state_run_adddata_react", s.StateReact(addData))
	assert.Equal(t, "state_run_adddata_entry_action", s.StateEntryAction(addData))
	assert.Equal(t, "state_run_adddata_exit_action", s.StateExitAction(addData))
}

func TestEventIDConstPrefixes(t *testing.T) {
	s := New(model.New(), Config{})
	assert.Equal(t, "in_Start", s.EventIDConst(model.Event{Name: "Start", Direction: model.DirIncoming}))
	assert.Equal(t, "out_Stopped", s.EventIDConst(model.Event{Name: "Stopped", Direction: model.DirOutgoing}))
	assert.Equal(t, "internal_Checking", s.EventIDConst(model.Event{Name: "Checking", Direction: model.DirInternal}))
	assert.Equal(t, "time_Wait_every_30s", s.EventIDConst(model.Event{Name: "Wait_every_30s", IsTimeEvent: true}))
}

func TestVariableGetterAndFixedNames(t *testing.T) {
	s := New(model.New(), Config{})
	assert.Equal(t, "get_timeout", s.VariableGetter(model.Variable{Name: "timeout"}))
	assert.Equal(t, "time_tick", s.TimeTick())
	assert.Equal(t, "trace_state_enter", s.TraceStateEnter())
	assert.Equal(t, "trace_state_exit", s.TraceStateExit())
}
