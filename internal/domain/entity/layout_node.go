package entity

import "fmt"

// NodeID uniquely identifies a node within one layout tree.
type NodeID string

// IDGenerator is a function that generates unique IDs.
type IDGenerator func() string

// FlexDirection indicates the axis a container distributes its children along.
type FlexDirection int

const (
	FlexNone   FlexDirection = iota // Leaf node
	FlexRow                         // Left to right
	FlexColumn                      // Top to bottom
)

func (f FlexDirection) String() string {
	switch f {
	case FlexRow:
		return "row"
	case FlexColumn:
		return "column"
	default:
		return "none"
	}
}

// Orthogonal returns the other axis. FlexNone maps to FlexNone.
func (f FlexDirection) Orthogonal() FlexDirection {
	switch f {
	case FlexRow:
		return FlexColumn
	case FlexColumn:
		return FlexRow
	default:
		return FlexNone
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f FlexDirection) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FlexDirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "row":
		*f = FlexRow
	case "column":
		*f = FlexColumn
	case "", "none":
		*f = FlexNone
	default:
		return fmt.Errorf("unknown flex direction %q", string(text))
	}
	return nil
}

// LeafData is the opaque content carried by a leaf. The layout never inspects it;
// it is handed back to the host's renderer untouched.
type LeafData map[string]any

// LayoutNode represents a node in the layout tree. It is either:
//   - Leaf node: holds opaque Data, no children
//   - Container node: holds two or more ordered children laid out along FlexDirection
type LayoutNode struct {
	ID       NodeID
	Data     LeafData // Leaf content, nil for containers
	Parent   *LayoutNode
	Children []*LayoutNode

	FlexDirection FlexDirection // FlexNone for leaves
	SizeWeight    float64       // Share of the parent's extent is weight/sum(sibling weights)
}

// NewLeaf creates a leaf node with a unit weight.
func NewLeaf(id NodeID, data LeafData) *LayoutNode {
	return &LayoutNode{
		ID:         id,
		Data:       data,
		SizeWeight: 1,
	}
}

// NewContainer creates a container and adopts the given children.
func NewContainer(id NodeID, dir FlexDirection, children ...*LayoutNode) *LayoutNode {
	n := &LayoutNode{
		ID:            id,
		FlexDirection: dir,
		SizeWeight:    1,
		Children:      make([]*LayoutNode, 0, len(children)),
	}
	for _, child := range children {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
	return n
}

// IsLeaf returns true if this node holds content (no children).
func (n *LayoutNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsContainer returns true if this node lays out children.
func (n *LayoutNode) IsContainer() bool {
	return !n.IsLeaf()
}

// Walk traverses the tree calling fn for each node. Returns early if fn returns false.
func (n *LayoutNode) Walk(fn func(*LayoutNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find searches the subtree for a node with the given ID.
func (n *LayoutNode) Find(id NodeID) *LayoutNode {
	var found *LayoutNode
	n.Walk(func(node *LayoutNode) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Leaves returns the leaf nodes in depth-first order.
func (n *LayoutNode) Leaves() []*LayoutNode {
	var leaves []*LayoutNode
	n.Walk(func(node *LayoutNode) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// FirstLeaf returns the first leaf in depth-first order.
func (n *LayoutNode) FirstLeaf() *LayoutNode {
	current := n
	for current.IsContainer() {
		current = current.Children[0]
	}
	return current
}

// IndexInParent returns the node's position among its siblings, or -1 for the root.
func (n *LayoutNode) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, child := range n.Parent.Children {
		if child == n {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *LayoutNode) IsAncestorOf(other *LayoutNode) bool {
	for current := other.Parent; current != nil; current = current.Parent {
		if current == n {
			return true
		}
	}
	return false
}

// TotalWeight returns the sum of the children's size weights.
func (n *LayoutNode) TotalWeight() float64 {
	total := 0.0
	for _, child := range n.Children {
		total += child.SizeWeight
	}
	return total
}

// Clone deep-copies the subtree. The clone's root has no parent.
// Leaf data maps are shared: the layout treats them as immutable.
func (n *LayoutNode) Clone() *LayoutNode {
	return n.cloneWithParent(nil)
}

func (n *LayoutNode) cloneWithParent(parent *LayoutNode) *LayoutNode {
	clone := &LayoutNode{
		ID:            n.ID,
		Data:          n.Data,
		Parent:        parent,
		FlexDirection: n.FlexDirection,
		SizeWeight:    n.SizeWeight,
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*LayoutNode, 0, len(n.Children))
		for _, child := range n.Children {
			clone.Children = append(clone.Children, child.cloneWithParent(clone))
		}
	}
	return clone
}

// NodeCount returns the number of nodes in the subtree.
func (n *LayoutNode) NodeCount() int {
	count := 0
	n.Walk(func(*LayoutNode) bool {
		count++
		return true
	})
	return count
}

// Validate checks the structural invariants of the subtree: unique ids,
// consistent parent links, containers with at least two children and a
// flex direction, positive weights.
func (n *LayoutNode) Validate() error {
	seen := make(map[NodeID]struct{})
	var err error
	n.Walk(func(node *LayoutNode) bool {
		if node.ID == "" {
			err = fmt.Errorf("%w: node with empty id", ErrInvalidSnapshot)
			return false
		}
		if _, dup := seen[node.ID]; dup {
			err = fmt.Errorf("%w: %s", ErrDuplicateNodeID, node.ID)
			return false
		}
		seen[node.ID] = struct{}{}
		if node.SizeWeight <= 0 {
			err = fmt.Errorf("%w: node %s has non-positive weight %v", ErrInvalidSnapshot, node.ID, node.SizeWeight)
			return false
		}
		if node.IsContainer() {
			if len(node.Children) < 2 {
				err = fmt.Errorf("%w: container %s has %d children", ErrInvalidSnapshot, node.ID, len(node.Children))
				return false
			}
			if node.FlexDirection == FlexNone {
				err = fmt.Errorf("%w: container %s has no flex direction", ErrInvalidSnapshot, node.ID)
				return false
			}
		}
		for _, child := range node.Children {
			if child.Parent != node {
				err = fmt.Errorf("%w: node %s has a broken parent link", ErrInvalidSnapshot, child.ID)
				return false
			}
		}
		return true
	})
	return err
}
