package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiler/internal/cli"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/ui/layout"
)

func newScriptModel(t *testing.T, ids ...entity.NodeID) *layout.Model {
	t.Helper()
	leaves := make([]*entity.LayoutNode, 0, len(ids))
	for _, id := range ids {
		leaves = append(leaves, entity.NewLeaf(id, nil))
	}
	opts := layout.DefaultOptions()
	opts.HoverThrottle = 0
	opts.ResizeThrottle = 0
	opts.HoverExitDebounce = 0
	m := layout.NewModel(entity.NewLayoutTreeState(entity.NewContainer("root", entity.FlexRow, leaves...)), opts)
	t.Cleanup(m.Close)
	return m
}

func leafOrder(m *layout.Model) []entity.NodeID {
	var ids []entity.NodeID
	for _, leaf := range m.State().Root.Leaves() {
		ids = append(ids, leaf.ID)
	}
	return ids
}

func TestRunScript_DragMovesNode(t *testing.T) {
	m := newScriptModel(t, "a", "b", "c")
	script := &cli.Script{
		Container: entity.Rect{Width: 200, Height: 100},
		Steps: []cli.ScriptStep{
			{Action: "drag", Node: "c", Target: "a", Point: &entity.Point{X: 15, Y: 50}},
		},
	}

	require.NoError(t, cli.RunScript(context.Background(), m, script))

	assert.Equal(t, []entity.NodeID{"c", "a", "b"}, leafOrder(m))
	assert.Nil(t, m.PendingAction())
	assert.True(t, m.Ready())
}

func TestRunScript_ResizeCommitsWeights(t *testing.T) {
	m := newScriptModel(t, "a", "b")
	script := &cli.Script{
		Container: entity.Rect{Width: 200, Height: 100},
		Steps: []cli.ScriptStep{
			{Action: "resize", Handle: 0, Point: &entity.Point{X: 150, Y: 50}},
		},
	}

	require.NoError(t, cli.RunScript(context.Background(), m, script))

	root := m.State().Root
	assert.InDelta(t, 1.5, root.Children[0].SizeWeight, 1e-9)
	assert.InDelta(t, 0.5, root.Children[1].SizeWeight, 1e-9)
	assert.False(t, m.Resizing())
}

func TestRunScript_ReducerActions(t *testing.T) {
	m := newScriptModel(t, "a", "b")
	script := &cli.Script{
		Container: entity.Rect{Width: 200, Height: 100},
		Steps: []cli.ScriptStep{
			{Action: "insert", Parent: "root", Index: 1, Insert: &entity.LayoutNodeSnapshot{ID: "x"}},
			{Action: "split", Target: "b", Direction: "bottom", Insert: &entity.LayoutNodeSnapshot{ID: "y"}},
			{Action: "swap", Node: "a", Target: "x"},
			{Action: "focus", Node: "y"},
			{Action: "magnify", Node: "a"},
			{Action: "remove", Node: "b"},
		},
	}

	require.NoError(t, cli.RunScript(context.Background(), m, script))

	state := m.State()
	assert.Equal(t, []entity.NodeID{"x", "a", "y"}, leafOrder(m))
	assert.Equal(t, entity.NodeID("y"), state.FocusedNodeID)
	assert.Equal(t, entity.NodeID("a"), state.MagnifiedNodeID)
	assert.NoError(t, state.Root.Validate())
}

func TestRunScript_PendingMoveLifecycle(t *testing.T) {
	m := newScriptModel(t, "a", "b", "c")
	script := &cli.Script{
		Steps: []cli.ScriptStep{
			{Action: "compute_move", Node: "a", Target: "c", Direction: "right"},
			{Action: "clear"},
			{Action: "compute_move", Node: "a", Target: "c", Direction: "right"},
			{Action: "commit"},
		},
	}

	require.NoError(t, cli.RunScript(context.Background(), m, script))

	assert.Equal(t, []entity.NodeID{"b", "c", "a"}, leafOrder(m))
	assert.Nil(t, m.PendingAction())
}

func TestRunScript_WrapsStepErrors(t *testing.T) {
	m := newScriptModel(t, "a", "b")
	script := &cli.Script{
		Steps: []cli.ScriptStep{
			{Action: "focus", Node: "b"},
			{Action: "remove", Node: "missing"},
			{Action: "focus", Node: "a"},
		},
	}

	err := cli.RunScript(context.Background(), m, script)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "step 2 (remove)")
	assert.Equal(t, entity.NodeID("b"), m.State().FocusedNodeID)
}

func TestScriptStep_ReducerActionValidation(t *testing.T) {
	tests := []struct {
		name string
		step cli.ScriptStep
	}{
		{"unknown action", cli.ScriptStep{Action: "explode"}},
		{"insert without node", cli.ScriptStep{Action: "insert", Parent: "root"}},
		{"split without direction", cli.ScriptStep{Action: "split", Target: "a", Insert: &entity.LayoutNodeSnapshot{ID: "x"}}},
		{"bad direction", cli.ScriptStep{Action: "compute_move", Node: "a", Target: "b", Direction: "sideways"}},
		{"resize_move with one weight", cli.ScriptStep{Action: "resize_move", Parent: "root", Weights: []float64{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.step.ReducerAction()
			assert.Error(t, err)
		})
	}
}

func TestScriptStep_PointerStepsNeedPoint(t *testing.T) {
	m := newScriptModel(t, "a", "b")
	script := &cli.Script{Steps: []cli.ScriptStep{{Action: "drag", Node: "a", Target: "b"}}}

	err := cli.RunScript(context.Background(), m, script)

	assert.ErrorContains(t, err, "point is required")
}

func TestLoadScript_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.json")
	doc := `{
  "container": {"left": 0, "top": 0, "width": 200, "height": 100},
  "steps": [
    {"action": "drag", "node": "c", "target": "a", "point": {"x": 15, "y": 50}},
    {"action": "resize_move", "parent": "root", "index": 0, "weights": [1.2, 0.8]}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	script, err := cli.LoadScript(path)

	require.NoError(t, err)
	assert.InDelta(t, 200, script.Container.Width, 1e-9)
	require.Len(t, script.Steps, 2)
	assert.Equal(t, entity.NodeID("c"), script.Steps[0].Node)
	require.NotNil(t, script.Steps[0].Point)
	assert.InDelta(t, 15, script.Steps[0].Point.X, 1e-9)
	assert.Equal(t, []float64{1.2, 0.8}, script.Steps[1].Weights)
}

func TestLoadScript_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps": [{"verb": "drag"}]}`), 0o644))

	_, err := cli.LoadScript(path)

	assert.Error(t, err)
}
