package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiler/internal/domain/entity"
)

func TestLayoutNode_Navigation(t *testing.T) {
	state := nestedState()
	root := state.Root
	col := root.Find("col")
	c := root.Find("c")
	require.NotNil(t, col)
	require.NotNil(t, c)

	assert.True(t, root.IsContainer())
	assert.True(t, c.IsLeaf())
	assert.Equal(t, 1, c.IndexInParent())
	assert.Equal(t, -1, root.IndexInParent())
	assert.True(t, root.IsAncestorOf(c))
	assert.False(t, c.IsAncestorOf(col))
	assert.Equal(t, entity.NodeID("b"), col.FirstLeaf().ID)
	assert.Equal(t, 5, root.NodeCount())
	assert.InDelta(t, 2, root.TotalWeight(), 1e-9)
	assert.Nil(t, root.Find("missing"))

	var ids []entity.NodeID
	for _, leaf := range root.Leaves() {
		ids = append(ids, leaf.ID)
	}
	assert.Equal(t, []entity.NodeID{"a", "b", "c"}, ids)
}

func TestLayoutNode_CloneIsIndependent(t *testing.T) {
	root := nestedState().Root

	clone := root.Clone()
	clone.Find("b").SizeWeight = 5
	clone.Find("col").Children = clone.Find("col").Children[:1]

	assert.InDelta(t, 1, root.Find("b").SizeWeight, 1e-9)
	assert.Len(t, root.Find("col").Children, 2)
	assert.Same(t, clone, clone.Find("col").Parent)
	assert.Nil(t, clone.Parent)
}

func TestLayoutNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *entity.LayoutNode
		wantErr error
	}{
		{
			name:  "valid tree",
			build: func() *entity.LayoutNode { return nestedState().Root },
		},
		{
			name: "duplicate id",
			build: func() *entity.LayoutNode {
				return entity.NewContainer("root", entity.FlexRow, entity.NewLeaf("a", nil), entity.NewLeaf("a", nil))
			},
			wantErr: entity.ErrDuplicateNodeID,
		},
		{
			name: "single child container",
			build: func() *entity.LayoutNode {
				return entity.NewContainer("root", entity.FlexRow, entity.NewLeaf("a", nil))
			},
			wantErr: entity.ErrInvalidSnapshot,
		},
		{
			name: "container without direction",
			build: func() *entity.LayoutNode {
				return entity.NewContainer("root", entity.FlexNone, entity.NewLeaf("a", nil), entity.NewLeaf("b", nil))
			},
			wantErr: entity.ErrInvalidSnapshot,
		},
		{
			name: "non-positive weight",
			build: func() *entity.LayoutNode {
				b := entity.NewLeaf("b", nil)
				b.SizeWeight = 0
				return entity.NewContainer("root", entity.FlexRow, entity.NewLeaf("a", nil), b)
			},
			wantErr: entity.ErrInvalidSnapshot,
		},
		{
			name: "broken parent link",
			build: func() *entity.LayoutNode {
				root := entity.NewContainer("root", entity.FlexRow, entity.NewLeaf("a", nil), entity.NewLeaf("b", nil))
				root.Children[1].Parent = nil
				return root
			},
			wantErr: entity.ErrInvalidSnapshot,
		},
		{
			name:    "empty id",
			build:   func() *entity.LayoutNode { return entity.NewLeaf("", nil) },
			wantErr: entity.ErrInvalidSnapshot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFlexDirection(t *testing.T) {
	assert.Equal(t, entity.FlexColumn, entity.FlexRow.Orthogonal())
	assert.Equal(t, entity.FlexRow, entity.FlexColumn.Orthogonal())
	assert.Equal(t, entity.FlexNone, entity.FlexNone.Orthogonal())

	var f entity.FlexDirection
	require.NoError(t, f.UnmarshalText([]byte("column")))
	assert.Equal(t, entity.FlexColumn, f)
	assert.Error(t, f.UnmarshalText([]byte("diagonal")))
}

func TestLayoutTreeState_CloneCopiesTransientState(t *testing.T) {
	state := nestedState()
	state.PendingAction = &entity.PendingAction{NodeID: "a", TargetID: "b", Direction: entity.DropLeft}
	state.ActiveResize = &entity.ActiveResize{ContainerID: "root", Weights: [2]float64{1, 1}}

	clone := state.Clone()
	clone.PendingAction.Direction = entity.DropRight
	clone.ActiveResize.Weights[0] = 2

	assert.Equal(t, entity.DropLeft, state.PendingAction.Direction)
	assert.InDelta(t, 1, state.ActiveResize.Weights[0], 1e-9)
	assert.Equal(t, entity.NodeID("a"), clone.FocusedNodeID)
	assert.Equal(t, 3, clone.LeafCount())
}
