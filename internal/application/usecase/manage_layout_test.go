package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiler/internal/domain/entity"
)

func sequentialIDs() entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}
}

func leaf(id entity.NodeID) *entity.LayoutNode {
	return entity.NewLeaf(id, nil)
}

func rowOf(ids ...entity.NodeID) *entity.LayoutTreeState {
	children := make([]*entity.LayoutNode, 0, len(ids))
	for _, id := range ids {
		children = append(children, leaf(id))
	}
	return entity.NewLayoutTreeState(entity.NewContainer("root", entity.FlexRow, children...))
}

// nested builds root(row)[a, col(column)[b, c]].
func nested() *entity.LayoutTreeState {
	col := entity.NewContainer("col", entity.FlexColumn, leaf("b"), leaf("c"))
	return entity.NewLayoutTreeState(entity.NewContainer("root", entity.FlexRow, leaf("a"), col))
}

// shape renders the tree structure without container ids.
func shape(n *entity.LayoutNode) string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return string(n.ID)
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, shape(child))
	}
	return n.FlexDirection.String() + "(" + strings.Join(parts, ",") + ")"
}

func weights(n *entity.LayoutNode) []float64 {
	w := make([]float64, 0, len(n.Children))
	for _, child := range n.Children {
		w = append(w, child.SizeWeight)
	}
	return w
}

func assertWeights(t *testing.T, want []float64, n *entity.LayoutNode) {
	t.Helper()
	got := weights(n)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "weight %d", i)
	}
}

// assertNormalized checks every container's weights sum to its child count.
func assertNormalized(t *testing.T, state *entity.LayoutTreeState) {
	t.Helper()
	require.NoError(t, state.Root.Validate())
	state.Root.Walk(func(n *entity.LayoutNode) bool {
		if n.IsContainer() {
			assert.InDelta(t, float64(len(n.Children)), n.TotalWeight(), 1e-9, "container %s", n.ID)
			if n.Parent != nil {
				assert.NotEqual(t, n.Parent.FlexDirection, n.FlexDirection, "container %s nests on its parent's axis", n.ID)
			}
		}
		return true
	})
}

func TestInsert_KeepsSiblingRatios(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b")
	state.Root.Children[0].SizeWeight = 1.5
	state.Root.Children[1].SizeWeight = 0.5

	err := uc.Insert(context.Background(), state, "root", leaf("x"), 1)

	require.NoError(t, err)
	assert.Equal(t, "row(a,x,b)", shape(state.Root))
	assertWeights(t, []float64{1.5, 1, 0.5}, state.Root)
	assert.Same(t, state.Root, state.FindNode("x").Parent)
}

func TestInsert_ClampsIndex(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b")

	require.NoError(t, uc.Insert(context.Background(), state, "root", leaf("x"), 99))
	require.NoError(t, uc.Insert(context.Background(), state, "root", leaf("y"), -3))

	assert.Equal(t, "row(y,a,b,x)", shape(state.Root))
}

func TestInsert_KeepsSameAxisSubtree(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := rowOf("a", "b", "c")
	before := entity.SnapshotFromState(state)
	pair := entity.NewContainer("sub", entity.FlexRow, leaf("x"), leaf("y"))

	require.NoError(t, uc.Insert(ctx, state, "root", pair, 1))

	assert.Equal(t, "row(a,row(x,y),b,c)", shape(state.Root))
	require.NotNil(t, state.FindNode("sub"))
	require.NoError(t, state.Root.Validate())

	_, err := uc.Remove(ctx, state, "sub")
	require.NoError(t, err)
	assert.Equal(t, before, entity.SnapshotFromState(state))
}

func TestInsert_IntoEmptyTreeBecomesRoot(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := entity.NewLayoutTreeState(nil)

	require.NoError(t, uc.Insert(context.Background(), state, "", leaf("a"), 0))

	assert.Equal(t, entity.NodeID("a"), state.Root.ID)
	assert.Equal(t, entity.NodeID("a"), state.FocusedNodeID)
}

func TestInsert_Errors(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()

	state := rowOf("a", "b")
	assert.ErrorIs(t, uc.Insert(ctx, state, "root", leaf("a"), 0), entity.ErrDuplicateNodeID)
	assert.ErrorIs(t, uc.Insert(ctx, state, "a", leaf("x"), 0), entity.ErrNotAContainer)
	assert.ErrorIs(t, uc.Insert(ctx, state, "missing", leaf("x"), 0), entity.ErrNodeNotFound)
	assert.ErrorIs(t, uc.Insert(ctx, entity.NewLayoutTreeState(nil), "root", leaf("x"), 0), entity.ErrNodeNotFound)
	assert.Error(t, uc.Insert(ctx, state, "root", nil, 0))
	assert.Equal(t, "row(a,b)", shape(state.Root))
}

func TestInsert_ClearsTransientState(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b")
	state.PendingAction = &entity.PendingAction{NodeID: "a", TargetID: "b", Direction: entity.DropLeft}

	require.NoError(t, uc.Insert(context.Background(), state, "root", leaf("x"), 0))

	assert.Nil(t, state.PendingAction)
}

func TestRemove_CollapsesSingleChildContainer(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()

	successor, err := uc.Remove(context.Background(), state, "b")

	require.NoError(t, err)
	assert.Equal(t, "row(a,c)", shape(state.Root))
	assert.Nil(t, state.FindNode("col"))
	require.NotNil(t, successor)
	assert.Equal(t, entity.NodeID("c"), successor.ID)
	assertWeights(t, []float64{1, 1}, state.Root)
}

func TestRemove_PromotesRemainingChildToRoot(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()

	_, err := uc.Remove(context.Background(), state, "a")

	require.NoError(t, err)
	assert.Equal(t, "column(b,c)", shape(state.Root))
	assert.Nil(t, state.Root.Parent)
	assert.InDelta(t, 1, state.Root.SizeWeight, 1e-9)
	assert.Equal(t, entity.NodeID("b"), state.FocusedNodeID)
}

func TestRemove_RenormalizesRemainingSiblings(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b", "c")
	state.Root.Children[0].SizeWeight = 2
	state.Root.Children[1].SizeWeight = 0.5
	state.Root.Children[2].SizeWeight = 0.5

	_, err := uc.Remove(context.Background(), state, "b")

	require.NoError(t, err)
	assertWeights(t, []float64{1.6, 0.4}, state.Root)
}

func TestRemove_MovesFocusAndClearsMagnify(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()
	state.FocusedNodeID = "b"
	state.MagnifiedNodeID = "c"

	_, err := uc.Remove(context.Background(), state, "col")

	require.NoError(t, err)
	assert.Equal(t, entity.NodeID("a"), state.Root.ID)
	assert.Equal(t, entity.NodeID("a"), state.FocusedNodeID)
	assert.Empty(t, state.MagnifiedNodeID)
}

func TestRemove_LastNodeEmptiesTree(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := entity.NewLayoutTreeState(leaf("a"))

	successor, err := uc.Remove(context.Background(), state, "a")

	require.NoError(t, err)
	assert.Nil(t, successor)
	assert.Nil(t, state.Root)
	assert.Empty(t, state.FocusedNodeID)
}

func TestRemove_UnknownNode(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())

	_, err := uc.Remove(context.Background(), rowOf("a", "b"), "missing")

	assert.ErrorIs(t, err, entity.ErrNodeNotFound)
}

func TestInsertRemove_RoundTrip(t *testing.T) {
	skewed := func() *entity.LayoutTreeState {
		state := rowOf("a", "b")
		state.Root.Children[0].SizeWeight = 1.5
		state.Root.Children[1].SizeWeight = 0.5
		return state
	}
	pair := func(dir entity.FlexDirection) func() *entity.LayoutNode {
		return func() *entity.LayoutNode {
			return entity.NewContainer("sub", dir, leaf("x"), leaf("y"))
		}
	}
	single := func() *entity.LayoutNode { return leaf("x") }

	tests := []struct {
		name   string
		build  func() *entity.LayoutTreeState
		parent entity.NodeID
		node   func() *entity.LayoutNode
		index  int
	}{
		{"leaf first in nested column", nested, "col", single, 0},
		{"leaf middle of nested column", nested, "col", single, 1},
		{"leaf last in nested column", nested, "col", single, 2},
		{"leaf first in root", nested, "root", single, 0},
		{"leaf last in root", nested, "root", single, 2},
		{"leaf into flat row", func() *entity.LayoutTreeState { return rowOf("a", "b", "c") }, "root", single, 3},
		{"leaf between skewed weights", skewed, "root", single, 1},
		{"same axis pair into root", nested, "root", pair(entity.FlexRow), 1},
		{"cross axis pair into root", nested, "root", pair(entity.FlexColumn), 0},
		{"same axis pair into column", nested, "col", pair(entity.FlexColumn), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewManageLayoutUseCase(sequentialIDs())
			ctx := context.Background()
			state := tt.build()
			before := entity.SnapshotFromState(state)
			node := tt.node()

			require.NoError(t, uc.Insert(ctx, state, tt.parent, node, tt.index))
			require.NoError(t, state.Root.Validate())
			_, err := uc.Remove(ctx, state, node.ID)
			require.NoError(t, err)

			assert.Equal(t, before, entity.SnapshotFromState(state))
		})
	}
}

func leafSet(state *entity.LayoutTreeState) map[entity.NodeID]bool {
	set := make(map[entity.NodeID]bool)
	if state.Root == nil {
		return set
	}
	for _, l := range state.Root.Leaves() {
		set[l.ID] = true
	}
	return set
}

func allNodes(state *entity.LayoutTreeState) []*entity.LayoutNode {
	var nodes []*entity.LayoutNode
	state.Root.Walk(func(n *entity.LayoutNode) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

func TestOperations_RandomSequenceKeepsTreeValid(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, 7))
			uc := NewManageLayoutUseCase(sequentialIDs())
			ctx := context.Background()
			state := rowOf("a", "b")
			want := leafSet(state)
			next := 0
			newLeaf := func() *entity.LayoutNode {
				next++
				return leaf(entity.NodeID(fmt.Sprintf("n%d", next)))
			}

			for step := 0; step < 150; step++ {
				nodes := allNodes(state)
				var op string
				switch rng.IntN(4) {
				case 0:
					op = "insert"
					var containers []*entity.LayoutNode
					for _, n := range nodes {
						if n.IsContainer() {
							containers = append(containers, n)
						}
					}
					if len(containers) == 0 {
						n := newLeaf()
						require.NoError(t, uc.Split(ctx, state, SplitInput{TargetID: state.Root.ID, Node: n, Direction: entity.DropRight}))
						want[n.ID] = true
						break
					}
					parent := containers[rng.IntN(len(containers))]
					n := newLeaf()
					require.NoError(t, uc.Insert(ctx, state, parent.ID, n, rng.IntN(len(parent.Children)+1)))
					want[n.ID] = true
				case 1:
					op = "split"
					target := nodes[rng.IntN(len(nodes))]
					n := newLeaf()
					dir := entity.DropDirection(rng.IntN(int(entity.DropCenter) + 1))
					require.NoError(t, uc.Split(ctx, state, SplitInput{TargetID: target.ID, Node: n, Direction: dir}))
					want[n.ID] = true
				case 2:
					op = "remove"
					if len(nodes) < 3 {
						continue
					}
					victim := nodes[1+rng.IntN(len(nodes)-1)]
					for _, l := range victim.Leaves() {
						delete(want, l.ID)
					}
					_, err := uc.Remove(ctx, state, victim.ID)
					require.NoError(t, err)
				default:
					op = "move"
					node := nodes[rng.IntN(len(nodes))]
					target := nodes[rng.IntN(len(nodes))]
					dir := entity.DropDirection(rng.IntN(int(entity.DropCenter) + 1))
					err := uc.Move(ctx, state, node.ID, target.ID, dir)
					if err != nil {
						require.True(t, errors.Is(err, entity.ErrNoOp) || errors.Is(err, entity.ErrInvalidMove),
							"step %d: move %s onto %s %s: %v", step, node.ID, target.ID, dir, err)
					}
				}

				require.NotNil(t, state.Root, "step %d (%s)", step, op)
				require.NoError(t, state.Root.Validate(), "step %d (%s): %s", step, op, shape(state.Root))
				require.Equal(t, want, leafSet(state), "step %d (%s): %s", step, op, shape(state.Root))
			}
		})
	}
}

func TestMove_Directions(t *testing.T) {
	tests := []struct {
		dir  entity.DropDirection
		want string
	}{
		{entity.DropRight, "row(b,c,a)"},
		{entity.DropLeft, "row(b,a,c)"},
		{entity.DropTop, "row(b,column(a,c))"},
		{entity.DropBottom, "row(b,column(c,a))"},
		{entity.DropOuterTop, "column(a,row(b,c))"},
		{entity.DropOuterBottom, "column(row(b,c),a)"},
		{entity.DropOuterRight, "row(b,c,a)"},
		{entity.DropOuterLeft, "row(a,b,c)"},
		{entity.DropCenter, "row(b,column(a,c))"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			uc := NewManageLayoutUseCase(sequentialIDs())
			state := rowOf("a", "b", "c")

			err := uc.Move(context.Background(), state, "a", "c", tt.dir)

			require.NoError(t, err)
			assert.Equal(t, tt.want, shape(state.Root))
			assertNormalized(t, state)
		})
	}
}

func TestMove_CenterUsesColumnAtRoot(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()

	require.NoError(t, uc.Move(context.Background(), state, "a", "col", entity.DropCenter))

	assert.Equal(t, "column(a,b,c)", shape(state.Root))
}

func TestMove_CollapseThenFlatten(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()

	require.NoError(t, uc.Move(context.Background(), state, "b", "a", entity.DropRight))

	assert.Equal(t, "row(a,b,c)", shape(state.Root))
	assertNormalized(t, state)
}

func TestMove_OuterWrapsTargetParent(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()

	require.NoError(t, uc.Move(context.Background(), state, "a", "c", entity.DropOuterRight))

	assert.Equal(t, "row(column(b,c),a)", shape(state.Root))
}

func TestMove_OntoAncestor(t *testing.T) {
	threeDeep := func() *entity.LayoutTreeState {
		col := entity.NewContainer("col", entity.FlexColumn, leaf("b"), leaf("c"), leaf("d"))
		return entity.NewLayoutTreeState(entity.NewContainer("root", entity.FlexRow, leaf("a"), col))
	}

	tests := []struct {
		name   string
		build  func() *entity.LayoutTreeState
		node   entity.NodeID
		target entity.NodeID
		dir    entity.DropDirection
		want   string
	}{
		{"left of collapsing parent", nested, "b", "col", entity.DropLeft, "row(a,b,c)"},
		{"top of collapsing parent", nested, "b", "col", entity.DropTop, "row(a,column(b,c))"},
		{"bottom of collapsing parent", nested, "b", "col", entity.DropBottom, "row(a,column(c,b))"},
		{"center of collapsing parent", nested, "b", "col", entity.DropCenter, "row(a,column(b,c))"},
		{"outer right of collapsing parent", nested, "b", "col", entity.DropOuterRight, "row(a,c,b)"},
		{"right of surviving parent", threeDeep, "b", "col", entity.DropRight, "row(a,column(c,d),b)"},
		{"left of root", nested, "b", "root", entity.DropLeft, "row(b,a,c)"},
		{"bottom of root", nested, "c", "root", entity.DropBottom, "column(row(a,b),c)"},
		{"collapsing root parent", func() *entity.LayoutTreeState { return rowOf("a", "b") }, "a", "root", entity.DropBottom, "column(b,a)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewManageLayoutUseCase(sequentialIDs())
			state := tt.build()
			leavesBefore := len(state.Root.Leaves())

			require.NoError(t, uc.Move(context.Background(), state, tt.node, tt.target, tt.dir))

			assert.Equal(t, tt.want, shape(state.Root))
			assert.Len(t, state.Root.Leaves(), leavesBefore)
			assertNormalized(t, state)
		})
	}
}

func TestMove_PreservesNodeIdentity(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()
	moved := state.FindNode("a")

	require.NoError(t, uc.Move(context.Background(), state, "a", "b", entity.DropTop))

	assert.Same(t, moved, state.FindNode("a"))
	assert.Equal(t, "column(a,b,c)", shape(state.FindNode("a").Parent))
}

func TestMove_Rejected(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := nested()

	assert.ErrorIs(t, uc.Move(ctx, state, "a", "a", entity.DropLeft), entity.ErrNoOp)
	assert.ErrorIs(t, uc.Move(ctx, state, "a", "b", entity.DropNone), entity.ErrNoOp)
	assert.ErrorIs(t, uc.Move(ctx, state, "col", "b", entity.DropLeft), entity.ErrInvalidMove)
	assert.ErrorIs(t, uc.Move(ctx, state, "missing", "b", entity.DropLeft), entity.ErrNodeNotFound)
	assert.ErrorIs(t, uc.Move(ctx, state, "a", "missing", entity.DropLeft), entity.ErrNodeNotFound)
	assert.Equal(t, "row(a,column(b,c))", shape(state.Root))
}

func TestSplit(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b")

	err := uc.Split(context.Background(), state, SplitInput{TargetID: "a", Node: leaf("x"), Direction: entity.DropBottom})

	require.NoError(t, err)
	assert.Equal(t, "row(column(a,x),b)", shape(state.Root))
	assert.Equal(t, entity.NodeID("c1"), state.Root.Children[0].ID)
	assertNormalized(t, state)
}

func TestSplit_EmptyTree(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := entity.NewLayoutTreeState(nil)

	require.NoError(t, uc.Split(context.Background(), state, SplitInput{Node: leaf("a"), Direction: entity.DropRight}))

	assert.Equal(t, "a", shape(state.Root))
}

func TestSplit_Errors(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := rowOf("a", "b")

	assert.ErrorIs(t, uc.Split(ctx, state, SplitInput{TargetID: "a", Node: leaf("x"), Direction: entity.DropNone}), entity.ErrNoOp)
	assert.ErrorIs(t, uc.Split(ctx, state, SplitInput{TargetID: "zz", Node: leaf("x"), Direction: entity.DropLeft}), entity.ErrNodeNotFound)
	assert.ErrorIs(t, uc.Split(ctx, state, SplitInput{TargetID: "a", Node: leaf("b"), Direction: entity.DropLeft}), entity.ErrDuplicateNodeID)
}

func TestSwap(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := nested()
	state.Root.Children[0].SizeWeight = 1.5
	state.Root.Children[1].SizeWeight = 0.5

	require.NoError(t, uc.Swap(context.Background(), state, "a", "c"))

	assert.Equal(t, "row(c,column(b,a))", shape(state.Root))
	assert.InDelta(t, 1.5, state.FindNode("c").SizeWeight, 1e-9)
	assert.InDelta(t, 1, state.FindNode("a").SizeWeight, 1e-9)
	assert.NoError(t, state.Root.Validate())
}

func TestSwap_Errors(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := nested()

	assert.ErrorIs(t, uc.Swap(ctx, state, "a", "a"), entity.ErrNoOp)
	assert.ErrorIs(t, uc.Swap(ctx, state, "col", "b"), entity.ErrInvalidMove)
	assert.ErrorIs(t, uc.Swap(ctx, state, "a", "zz"), entity.ErrNodeNotFound)
}

func TestRebalanceWeights(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	state := rowOf("a", "b", "c")
	state.Root.Children[0].SizeWeight = 2
	state.Root.Children[1].SizeWeight = math.NaN()
	state.Root.Children[2].SizeWeight = 4

	require.NoError(t, uc.RebalanceWeights(context.Background(), state, "root"))

	assertWeights(t, []float64{2.0 / 3, 1, 4.0 / 3}, state.Root)
	assert.ErrorIs(t, uc.RebalanceWeights(context.Background(), state, "a"), entity.ErrNotAContainer)
}

func TestMagnify_Toggles(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := nested()

	require.NoError(t, uc.Magnify(ctx, state, "b"))
	assert.Equal(t, entity.NodeID("b"), state.MagnifiedNodeID)

	require.NoError(t, uc.Magnify(ctx, state, "c"))
	assert.Equal(t, entity.NodeID("c"), state.MagnifiedNodeID)

	require.NoError(t, uc.Magnify(ctx, state, "c"))
	assert.Empty(t, state.MagnifiedNodeID)

	assert.ErrorIs(t, uc.Magnify(ctx, state, "col"), entity.ErrNotALeaf)
	assert.ErrorIs(t, uc.Magnify(ctx, state, "zz"), entity.ErrNodeNotFound)
}

func TestFocus(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := nested()

	require.NoError(t, uc.Focus(ctx, state, "c"))
	assert.Equal(t, entity.NodeID("c"), state.FocusedNodeID)
	assert.ErrorIs(t, uc.Focus(ctx, state, "col"), entity.ErrNotALeaf)
	assert.ErrorIs(t, uc.Focus(ctx, state, "zz"), entity.ErrNodeNotFound)
}

func TestResizeWeights_SetAndCommit(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := rowOf("a", "b", "c")

	require.NoError(t, uc.SetResizeWeights(ctx, state, "root", 0, [2]float64{1.5, 0.5}))
	assertWeights(t, []float64{1, 1, 1}, state.Root)

	require.NoError(t, uc.CommitResize(ctx, state))
	assert.Nil(t, state.ActiveResize)
	assertWeights(t, []float64{1.5, 0.5, 1}, state.Root)

	assert.ErrorIs(t, uc.CommitResize(ctx, state), entity.ErrNoOp)
}

func TestSetResizeWeights_Rejected(t *testing.T) {
	uc := NewManageLayoutUseCase(sequentialIDs())
	ctx := context.Background()
	state := rowOf("a", "b")

	assert.ErrorIs(t, uc.SetResizeWeights(ctx, state, "root", 1, [2]float64{1, 1}), entity.ErrInvalidHandle)
	assert.ErrorIs(t, uc.SetResizeWeights(ctx, state, "root", 0, [2]float64{0, 2}), entity.ErrInvalidHandle)
	assert.ErrorIs(t, uc.SetResizeWeights(ctx, state, "a", 0, [2]float64{1, 1}), entity.ErrNotAContainer)

	state.PendingAction = &entity.PendingAction{NodeID: "a", TargetID: "b", Direction: entity.DropLeft}
	assert.ErrorIs(t, uc.SetResizeWeights(ctx, state, "root", 0, [2]float64{1, 1}), entity.ErrNoOp)
	assert.Nil(t, state.ActiveResize)
}

func TestComputeResizeWeights(t *testing.T) {
	tests := []struct {
		name         string
		start        [2]float64
		total        float64
		extent       float64
		displacement float64
		want         [2]float64
	}{
		{"move right", [2]float64{1, 1}, 2, 200, 50, [2]float64{1.5, 0.5}},
		{"move left", [2]float64{1, 1}, 2, 200, -50, [2]float64{0.5, 1.5}},
		{"clamped at second minimum", [2]float64{1, 1}, 2, 200, 500, [2]float64{1.8, 0.2}},
		{"clamped at first minimum", [2]float64{1, 1}, 2, 200, -500, [2]float64{0.2, 1.8}},
		{"three siblings", [2]float64{1, 1}, 3, 300, 100, [2]float64{2 - 0.3, 0.3}},
		{"zero extent", [2]float64{1, 1}, 2, 0, 50, [2]float64{1, 1}},
		{"pair below minimum", [2]float64{0.1, 0.1}, 2, 200, 10, [2]float64{0.1, 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeResizeWeights(tt.start, tt.total, tt.extent, tt.displacement, 0.1)

			assert.InDelta(t, tt.want[0], got[0], 1e-9)
			assert.InDelta(t, tt.want[1], got[1], 1e-9)
			assert.InDelta(t, tt.start[0]+tt.start[1], got[0]+got[1], 1e-9)
		})
	}
}
