package entity

import "errors"

var (
	// ErrNodeNotFound is returned when a referenced node id is absent from the tree.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNotAContainer is returned when a structural mutation targets a leaf.
	ErrNotAContainer = errors.New("node is not a container")

	// ErrNotALeaf is returned when an operation that needs a leaf targets a container.
	ErrNotALeaf = errors.New("node is not a leaf")

	// ErrNoOp marks a recognized no-op outcome such as dropping a node onto itself.
	ErrNoOp = errors.New("no-op")

	// ErrInvalidMove is returned when a node would be moved into its own subtree.
	ErrInvalidMove = errors.New("invalid move")

	// ErrDuplicateNodeID is returned when a node id already exists in the tree.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrInvalidSnapshot is returned when a serialized layout breaks tree invariants.
	ErrInvalidSnapshot = errors.New("invalid layout snapshot")

	// ErrInvalidHandle is returned when a resize handle does not match the tree.
	ErrInvalidHandle = errors.New("invalid resize handle")
)
