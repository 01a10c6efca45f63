package entity

// PendingAction is a tentative move derived from drag-hover state.
// It never mutates the tree until committed.
type PendingAction struct {
	NodeID    NodeID        // Node being dragged
	TargetID  NodeID        // Node hovered
	Direction DropDirection // Where the dragged node would land
}

// ActiveResize holds the in-progress weights of the two siblings separated by
// a resize handle. Geometry honors it; the tree weights stay untouched until
// the resize ends.
type ActiveResize struct {
	ContainerID NodeID
	Index       int // Handle sits between Children[Index] and Children[Index+1]
	Weights     [2]float64
}

// LayoutTreeState is the root of the layout: the tree plus the tree-level
// bookkeeping that must stay unique across nodes.
type LayoutTreeState struct {
	Root            *LayoutNode
	MagnifiedNodeID NodeID // Empty when nothing is magnified
	FocusedNodeID   NodeID // Empty when nothing is focused
	PendingAction   *PendingAction
	ActiveResize    *ActiveResize
}

// NewLayoutTreeState creates a state with the given root (which may be nil).
func NewLayoutTreeState(root *LayoutNode) *LayoutTreeState {
	s := &LayoutTreeState{Root: root}
	if root != nil {
		root.Parent = nil
		s.FocusedNodeID = root.FirstLeaf().ID
	}
	return s
}

// FindNode searches for a node by ID.
func (s *LayoutTreeState) FindNode(id NodeID) *LayoutNode {
	if s == nil || s.Root == nil || id == "" {
		return nil
	}
	return s.Root.Find(id)
}

// LeafCount returns the number of leaves in the tree.
func (s *LayoutTreeState) LeafCount() int {
	if s == nil || s.Root == nil {
		return 0
	}
	return len(s.Root.Leaves())
}

// Clone deep-copies the state so it can be mutated without affecting readers.
func (s *LayoutTreeState) Clone() *LayoutTreeState {
	if s == nil {
		return &LayoutTreeState{}
	}
	clone := &LayoutTreeState{
		MagnifiedNodeID: s.MagnifiedNodeID,
		FocusedNodeID:   s.FocusedNodeID,
	}
	if s.Root != nil {
		clone.Root = s.Root.Clone()
	}
	if s.PendingAction != nil {
		pending := *s.PendingAction
		clone.PendingAction = &pending
	}
	if s.ActiveResize != nil {
		resize := *s.ActiveResize
		clone.ActiveResize = &resize
	}
	return clone
}
