package entity

import "fmt"

// LayoutSnapshotVersion is the current schema version for layout snapshots.
// Increment when making breaking changes to the serialization format.
const LayoutSnapshotVersion = 1

// LayoutSnapshot is the serializable form of a layout tree handed in and out
// by the host. Transient interaction state (pending move, active resize) is
// never serialized.
type LayoutSnapshot struct {
	Version         int                 `json:"version" toml:"version"`
	Root            *LayoutNodeSnapshot `json:"root,omitempty" toml:"root,omitempty"`
	MagnifiedNodeID NodeID              `json:"magnified_node_id,omitempty" toml:"magnified_node_id,omitempty"`
	FocusedNodeID   NodeID              `json:"focused_node_id,omitempty" toml:"focused_node_id,omitempty"`
}

// LayoutNodeSnapshot captures a node in the layout tree.
type LayoutNodeSnapshot struct {
	ID            NodeID                `json:"id" toml:"id"`
	Data          LeafData              `json:"data,omitempty" toml:"data,omitempty"`             // Leaf nodes
	Children      []*LayoutNodeSnapshot `json:"children,omitempty" toml:"children,omitempty"`     // Containers
	FlexDirection FlexDirection         `json:"flex_direction,omitempty" toml:"flex_direction,omitempty"`
	SizeWeight    float64               `json:"size_weight,omitempty" toml:"size_weight,omitempty"`
}

// SnapshotFromState creates a serializable snapshot from a live state.
func SnapshotFromState(state *LayoutTreeState) *LayoutSnapshot {
	snap := &LayoutSnapshot{Version: LayoutSnapshotVersion}
	if state == nil {
		return snap
	}
	snap.Root = snapshotNode(state.Root)
	snap.MagnifiedNodeID = state.MagnifiedNodeID
	snap.FocusedNodeID = state.FocusedNodeID
	return snap
}

func snapshotNode(node *LayoutNode) *LayoutNodeSnapshot {
	if node == nil {
		return nil
	}
	snap := &LayoutNodeSnapshot{
		ID:            node.ID,
		Data:          node.Data,
		FlexDirection: node.FlexDirection,
		SizeWeight:    node.SizeWeight,
	}
	if len(node.Children) > 0 {
		snap.Children = make([]*LayoutNodeSnapshot, 0, len(node.Children))
		for _, child := range node.Children {
			snap.Children = append(snap.Children, snapshotNode(child))
		}
	}
	return snap
}

// StateFromSnapshot reconstructs a live state from a snapshot. Missing weights
// default to 1. The result is validated; references to absent nodes are dropped.
func StateFromSnapshot(snap *LayoutSnapshot) (*LayoutTreeState, error) {
	if snap == nil {
		return NewLayoutTreeState(nil), nil
	}
	if snap.Version > LayoutSnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
	}

	root := nodeFromSnapshot(snap.Root, nil)
	if root != nil {
		if err := root.Validate(); err != nil {
			return nil, err
		}
	}

	state := NewLayoutTreeState(root)
	if n := state.FindNode(snap.MagnifiedNodeID); n != nil && n.IsLeaf() {
		state.MagnifiedNodeID = n.ID
	}
	if n := state.FindNode(snap.FocusedNodeID); n != nil && n.IsLeaf() {
		state.FocusedNodeID = n.ID
	}
	return state, nil
}

// NodeFromSnapshot builds a detached subtree from its serialized form.
// Missing weights default to 1. The result is not validated.
func NodeFromSnapshot(snap *LayoutNodeSnapshot) *LayoutNode {
	return nodeFromSnapshot(snap, nil)
}

func nodeFromSnapshot(snap *LayoutNodeSnapshot, parent *LayoutNode) *LayoutNode {
	if snap == nil {
		return nil
	}
	node := &LayoutNode{
		ID:            snap.ID,
		Data:          snap.Data,
		Parent:        parent,
		FlexDirection: snap.FlexDirection,
		SizeWeight:    snap.SizeWeight,
	}
	if node.SizeWeight == 0 {
		node.SizeWeight = 1
	}
	if len(snap.Children) > 0 {
		node.Children = make([]*LayoutNode, 0, len(snap.Children))
		for _, childSnap := range snap.Children {
			if child := nodeFromSnapshot(childSnap, node); child != nil {
				node.Children = append(node.Children, child)
			}
		}
	}
	return node
}
