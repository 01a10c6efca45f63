package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
)

// ManageLayoutUseCase handles structural layout tree operations.
// All operations mutate the given state in place; callers that need the
// previous state intact (the Reducer) pass a clone.
type ManageLayoutUseCase struct {
	idGenerator entity.IDGenerator
}

// NewManageLayoutUseCase creates a new layout management use case.
// A nil generator falls back to random UUIDs.
func NewManageLayoutUseCase(idGenerator entity.IDGenerator) *ManageLayoutUseCase {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &ManageLayoutUseCase{
		idGenerator: idGenerator,
	}
}

// Insert adds node as a child of parentID at index. The index is clamped to
// the parent's children range. Inserting with an empty parentID into an empty
// tree makes node the root. The inserted subtree keeps its ids, even when it
// lays out along its new parent's axis, so it can be removed again by id.
func (uc *ManageLayoutUseCase) Insert(
	ctx context.Context,
	state *entity.LayoutTreeState,
	parentID entity.NodeID,
	node *entity.LayoutNode,
	index int,
) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	if node == nil {
		return fmt.Errorf("node is required")
	}
	log.Debug().
		Str("parent_id", string(parentID)).
		Str("node_id", string(node.ID)).
		Int("index", index).
		Msg("inserting node")

	if err := uc.checkNewSubtree(state, node); err != nil {
		return err
	}

	if state.Root == nil {
		if parentID != "" {
			return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, parentID)
		}
		node.Parent = nil
		node.SizeWeight = 1
		state.Root = node
		state.FocusedNodeID = node.FirstLeaf().ID
		invalidateTransient(state)
		log.Info().Str("node_id", string(node.ID)).Msg("node inserted as root")
		return nil
	}

	parent := state.FindNode(parentID)
	if parent == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, parentID)
	}
	if parent.IsLeaf() {
		return fmt.Errorf("%w: %s", entity.ErrNotAContainer, parentID)
	}

	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}

	// The newcomer takes an average share; existing siblings keep their ratios.
	node.SizeWeight = parent.TotalWeight() / float64(len(parent.Children))
	node.Parent = parent
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = node

	normalizeWeights(parent)
	invalidateTransient(state)

	log.Info().
		Str("node_id", string(node.ID)).
		Str("parent_id", string(parentID)).
		Int("children", len(parent.Children)).
		Msg("node inserted")
	return nil
}

// Remove detaches and destroys the subtree rooted at nodeID. A parent left
// with a single child collapses into that child. Returns the node that took
// over the removed node's space, or nil if the tree is now empty.
func (uc *ManageLayoutUseCase) Remove(
	ctx context.Context,
	state *entity.LayoutTreeState,
	nodeID entity.NodeID,
) (*entity.LayoutNode, error) {
	log := logging.FromContext(ctx)
	if state == nil {
		return nil, fmt.Errorf("layout state is required")
	}
	log.Debug().Str("node_id", string(nodeID)).Msg("removing node")

	node := state.FindNode(nodeID)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, nodeID)
	}

	focusLost := node.Find(state.FocusedNodeID) != nil
	if node.Find(state.MagnifiedNodeID) != nil {
		state.MagnifiedNodeID = ""
	}

	successor := detach(state, node, nil)
	invalidateTransient(state)

	if focusLost {
		state.FocusedNodeID = ""
		if successor != nil {
			state.FocusedNodeID = successor.FirstLeaf().ID
		}
	}

	ev := log.Info().Str("removed_node_id", string(nodeID))
	if successor != nil {
		ev = ev.Str("successor_id", string(successor.ID))
	}
	ev.Msg("node removed")

	return successor, nil
}

// Move relocates nodeID next to targetID according to dir:
//   - Top/Right/Bottom/Left wrap the target in a new container along the
//     direction's axis, the moved node on the indicated side
//   - Outer variants do the same around the target's parent
//   - Center wraps the target along the axis orthogonal to its parent,
//     the moved node taking the target's place and pushing it after
//
// Same-axis nesting produced by the wrap is flattened into the parent.
func (uc *ManageLayoutUseCase) Move(
	ctx context.Context,
	state *entity.LayoutTreeState,
	nodeID, targetID entity.NodeID,
	dir entity.DropDirection,
) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	log.Debug().
		Str("node_id", string(nodeID)).
		Str("target_id", string(targetID)).
		Str("direction", dir.String()).
		Msg("moving node")

	node, target, err := uc.ValidateMove(state, nodeID, targetID, dir)
	if err != nil {
		return err
	}

	// A parent left with one child collapses into it, so a drop onto the
	// node's own parent lands next to the sibling that inherits its slot.
	if target == node.Parent && len(target.Children) == 2 {
		target = target.Children[1-node.IndexInParent()]
	}
	detach(state, node, target)
	uc.placeAdjacent(state, target, node, dir)
	flattenAll(state.Root)
	invalidateTransient(state)

	log.Info().
		Str("node_id", string(nodeID)).
		Str("target_id", string(targetID)).
		Str("direction", dir.String()).
		Msg("node moved")
	return nil
}

// ValidateMove checks that a move is structurally possible without mutating state.
func (uc *ManageLayoutUseCase) ValidateMove(
	state *entity.LayoutTreeState,
	nodeID, targetID entity.NodeID,
	dir entity.DropDirection,
) (node, target *entity.LayoutNode, err error) {
	node = state.FindNode(nodeID)
	if node == nil {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, nodeID)
	}
	target = state.FindNode(targetID)
	if target == nil {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, targetID)
	}
	if nodeID == targetID {
		return nil, nil, fmt.Errorf("%w: node %s dropped onto itself", entity.ErrNoOp, nodeID)
	}
	if dir < entity.DropTop || dir > entity.DropCenter {
		return nil, nil, fmt.Errorf("%w: no drop direction", entity.ErrNoOp)
	}
	if node.IsAncestorOf(target) {
		return nil, nil, fmt.Errorf("%w: %s contains %s", entity.ErrInvalidMove, nodeID, targetID)
	}
	return node, target, nil
}

// SplitInput contains parameters for splitting a node.
type SplitInput struct {
	TargetID  entity.NodeID
	Node      *entity.LayoutNode
	Direction entity.DropDirection
}

// Split inserts a new node next to the target, using the same placement
// rules as Move. Splitting an empty tree with an empty target makes the node the root.
func (uc *ManageLayoutUseCase) Split(ctx context.Context, state *entity.LayoutTreeState, input SplitInput) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	if input.Node == nil {
		return fmt.Errorf("node is required")
	}
	log.Debug().
		Str("target_id", string(input.TargetID)).
		Str("node_id", string(input.Node.ID)).
		Str("direction", input.Direction.String()).
		Msg("splitting node")

	if state.Root == nil && input.TargetID == "" {
		return uc.Insert(ctx, state, "", input.Node, 0)
	}

	if err := uc.checkNewSubtree(state, input.Node); err != nil {
		return err
	}
	target := state.FindNode(input.TargetID)
	if target == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, input.TargetID)
	}
	if input.Direction < entity.DropTop || input.Direction > entity.DropCenter {
		return fmt.Errorf("%w: no split direction", entity.ErrNoOp)
	}

	input.Node.Parent = nil
	uc.placeAdjacent(state, target, input.Node, input.Direction)
	invalidateTransient(state)

	log.Info().
		Str("node_id", string(input.Node.ID)).
		Str("target_id", string(input.TargetID)).
		Msg("node split completed")
	return nil
}

// Swap exchanges the positions of two nodes. Each position keeps its size.
func (uc *ManageLayoutUseCase) Swap(ctx context.Context, state *entity.LayoutTreeState, aID, bID entity.NodeID) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	log.Debug().Str("a", string(aID)).Str("b", string(bID)).Msg("swapping nodes")

	a := state.FindNode(aID)
	if a == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, aID)
	}
	b := state.FindNode(bID)
	if b == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, bID)
	}
	if aID == bID {
		return fmt.Errorf("%w: node %s swapped with itself", entity.ErrNoOp, aID)
	}
	if a.IsAncestorOf(b) || b.IsAncestorOf(a) {
		return fmt.Errorf("%w: %s and %s overlap", entity.ErrInvalidMove, aID, bID)
	}

	pa, pb := a.Parent, b.Parent
	ia, ib := a.IndexInParent(), b.IndexInParent()
	pa.Children[ia] = b
	pb.Children[ib] = a
	a.Parent, b.Parent = pb, pa
	a.SizeWeight, b.SizeWeight = b.SizeWeight, a.SizeWeight

	flattenChild(pb, a)
	flattenChild(pa, b)
	invalidateTransient(state)

	log.Info().Str("a", string(aID)).Str("b", string(bID)).Msg("nodes swapped")
	return nil
}

// RebalanceWeights normalizes a container's child weights so they sum to the
// number of children while keeping their ratios. Non-positive weights are
// replaced by the mean of the valid ones.
func (uc *ManageLayoutUseCase) RebalanceWeights(
	ctx context.Context,
	state *entity.LayoutTreeState,
	containerID entity.NodeID,
) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}

	container := state.FindNode(containerID)
	if container == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, containerID)
	}
	if container.IsLeaf() {
		return fmt.Errorf("%w: %s", entity.ErrNotAContainer, containerID)
	}

	normalizeWeights(container)
	log.Debug().Str("container_id", string(containerID)).Msg("weights rebalanced")
	return nil
}

// Magnify toggles the magnified leaf. An empty id clears magnification.
func (uc *ManageLayoutUseCase) Magnify(ctx context.Context, state *entity.LayoutTreeState, nodeID entity.NodeID) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}

	if nodeID == "" || nodeID == state.MagnifiedNodeID {
		log.Debug().Str("node_id", string(state.MagnifiedNodeID)).Msg("magnification cleared")
		state.MagnifiedNodeID = ""
		return nil
	}

	node := state.FindNode(nodeID)
	if node == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, nodeID)
	}
	if node.IsContainer() {
		return fmt.Errorf("%w: %s", entity.ErrNotALeaf, nodeID)
	}

	state.MagnifiedNodeID = nodeID
	log.Debug().Str("node_id", string(nodeID)).Msg("node magnified")
	return nil
}

// Focus sets the focused leaf.
func (uc *ManageLayoutUseCase) Focus(ctx context.Context, state *entity.LayoutTreeState, nodeID entity.NodeID) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}

	node := state.FindNode(nodeID)
	if node == nil {
		return fmt.Errorf("%w: %s", entity.ErrNodeNotFound, nodeID)
	}
	if node.IsContainer() {
		return fmt.Errorf("%w: %s", entity.ErrNotALeaf, nodeID)
	}

	old := state.FocusedNodeID
	state.FocusedNodeID = nodeID
	log.Debug().Str("from", string(old)).Str("to", string(nodeID)).Msg("focus changed")
	return nil
}

// SetResizeWeights records in-progress weights for the siblings separated by
// a handle. The tree's own weights are untouched until CommitResize.
// A resize is ignored while a drag move is pending.
func (uc *ManageLayoutUseCase) SetResizeWeights(
	ctx context.Context,
	state *entity.LayoutTreeState,
	containerID entity.NodeID,
	index int,
	weights [2]float64,
) error {
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	if state.PendingAction != nil {
		return fmt.Errorf("%w: drag in progress", entity.ErrNoOp)
	}
	if _, err := resizeContainer(state, containerID, index); err != nil {
		return err
	}
	if !(weights[0] > 0) || !(weights[1] > 0) {
		return fmt.Errorf("%w: weights must be positive", entity.ErrInvalidHandle)
	}

	state.ActiveResize = &entity.ActiveResize{
		ContainerID: containerID,
		Index:       index,
		Weights:     weights,
	}
	logging.FromContext(ctx).Trace().
		Str("container_id", string(containerID)).
		Int("index", index).
		Float64("first", weights[0]).
		Float64("second", weights[1]).
		Msg("resize weights updated")
	return nil
}

// CommitResize writes the active resize weights into the tree.
func (uc *ManageLayoutUseCase) CommitResize(ctx context.Context, state *entity.LayoutTreeState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return fmt.Errorf("layout state is required")
	}
	resize := state.ActiveResize
	if resize == nil {
		return fmt.Errorf("%w: no active resize", entity.ErrNoOp)
	}
	state.ActiveResize = nil

	container, err := resizeContainer(state, resize.ContainerID, resize.Index)
	if err != nil {
		return err
	}

	container.Children[resize.Index].SizeWeight = resize.Weights[0]
	container.Children[resize.Index+1].SizeWeight = resize.Weights[1]
	normalizeWeights(container)

	log.Debug().
		Str("container_id", string(resize.ContainerID)).
		Int("index", resize.Index).
		Float64("first", container.Children[resize.Index].SizeWeight).
		Float64("second", container.Children[resize.Index+1].SizeWeight).
		Msg("resize committed")
	return nil
}

// ComputeResizeWeights returns the new weights of two siblings after their
// separating handle moved by displacement pixels.
//
// start holds the siblings' weights when the resize began, total is the sum
// of all sibling weights in the container and extent the container's size
// along its axis. Each sibling keeps at least minFraction of the container.
func ComputeResizeWeights(start [2]float64, total, extent, displacement, minFraction float64) [2]float64 {
	if extent <= 0 || total <= 0 {
		return start
	}
	pair := start[0] + start[1]
	minWeight := minFraction * total
	if pair < 2*minWeight {
		return start
	}

	first := clampFloat64(start[0]+displacement/extent*total, minWeight, pair-minWeight)
	return [2]float64{first, pair - first}
}

func resizeContainer(state *entity.LayoutTreeState, containerID entity.NodeID, index int) (*entity.LayoutNode, error) {
	container := state.FindNode(containerID)
	if container == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, containerID)
	}
	if container.IsLeaf() {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotAContainer, containerID)
	}
	if index < 0 || index+1 >= len(container.Children) {
		return nil, fmt.Errorf("%w: index %d in %s", entity.ErrInvalidHandle, index, containerID)
	}
	return container, nil
}

// checkNewSubtree verifies a subtree about to join the tree is well formed
// and shares no ids with it.
func (uc *ManageLayoutUseCase) checkNewSubtree(state *entity.LayoutTreeState, node *entity.LayoutNode) error {
	if node.SizeWeight <= 0 {
		node.SizeWeight = 1
	}
	if err := node.Validate(); err != nil {
		return err
	}
	var err error
	node.Walk(func(n *entity.LayoutNode) bool {
		if state.FindNode(n.ID) != nil {
			err = fmt.Errorf("%w: %s", entity.ErrDuplicateNodeID, n.ID)
			return false
		}
		return true
	})
	return err
}

// placeAdjacent attaches a detached node next to target per dir.
func (uc *ManageLayoutUseCase) placeAdjacent(
	state *entity.LayoutTreeState,
	target, node *entity.LayoutNode,
	dir entity.DropDirection,
) {
	anchor := target
	if dir.IsOuter() && target.Parent != nil {
		anchor = target.Parent
	}

	axis := dir.Axis()
	if dir == entity.DropCenter {
		axis = entity.FlexColumn
		if anchor.Parent != nil {
			axis = anchor.Parent.FlexDirection.Orthogonal()
		}
	}

	uc.wrap(state, anchor, node, axis, dir.InsertsBefore())
}

// wrap replaces anchor with a new container holding anchor and node along axis.
func (uc *ManageLayoutUseCase) wrap(
	state *entity.LayoutTreeState,
	anchor, node *entity.LayoutNode,
	axis entity.FlexDirection,
	before bool,
) {
	parent := anchor.Parent
	index := anchor.IndexInParent()

	container := entity.NewContainer(entity.NodeID(uc.idGenerator()), axis)
	container.SizeWeight = anchor.SizeWeight
	anchor.SizeWeight = 1
	node.SizeWeight = 1
	if before {
		container.Children = []*entity.LayoutNode{node, anchor}
	} else {
		container.Children = []*entity.LayoutNode{anchor, node}
	}
	anchor.Parent = container
	node.Parent = container

	if parent == nil {
		container.Parent = nil
		container.SizeWeight = 1
		state.Root = container
	} else {
		parent.Children[index] = container
		container.Parent = parent
	}

	flattenChild(container, anchor)
	flattenChild(container, node)
	normalizeWeights(container)
	if parent != nil {
		flattenChild(parent, container)
	}
}

// detach unlinks node from the tree, collapsing a parent left with a single
// child. Returns the node now occupying the vacated space (the promoted
// sibling or a neighbor), nil when the tree became empty. A promoted keep
// node is never flattened away.
func detach(state *entity.LayoutTreeState, node, keep *entity.LayoutNode) *entity.LayoutNode {
	parent := node.Parent
	if parent == nil {
		state.Root = nil
		return nil
	}

	index := node.IndexInParent()
	parent.Children = append(parent.Children[:index], parent.Children[index+1:]...)
	node.Parent = nil

	if len(parent.Children) > 1 {
		normalizeWeights(parent)
		if index >= len(parent.Children) {
			index = len(parent.Children) - 1
		}
		return parent.Children[index]
	}

	// Collapse: the remaining child takes over the parent's slot.
	remaining := parent.Children[0]
	grandparent := parent.Parent
	remaining.SizeWeight = parent.SizeWeight
	parent.Children = nil

	if grandparent == nil {
		remaining.Parent = nil
		remaining.SizeWeight = 1
		state.Root = remaining
		return remaining
	}

	grandparent.Children[parent.IndexInParent()] = remaining
	remaining.Parent = grandparent
	parent.Parent = nil
	if remaining == keep {
		return remaining
	}

	standIn := remaining
	if remaining.IsContainer() && remaining.FlexDirection == grandparent.FlexDirection {
		standIn = remaining.Children[0]
	}
	flattenChild(grandparent, remaining)
	return standIn
}

// flattenAll removes same-axis nesting anywhere below node.
func flattenAll(node *entity.LayoutNode) {
	for i := 0; i < len(node.Children); i++ {
		child := node.Children[i]
		flattenAll(child)
		if child.IsContainer() && child.FlexDirection == node.FlexDirection {
			flattenChild(node, child)
			i--
		}
	}
}

// flattenChild merges child into parent when both lay out along the same axis,
// scaling the grandchildren's weights so visual sizes are preserved.
func flattenChild(parent, child *entity.LayoutNode) {
	if child.IsLeaf() || child.Parent != parent || child.FlexDirection != parent.FlexDirection {
		return
	}
	index := child.IndexInParent()
	childTotal := child.TotalWeight()

	merged := make([]*entity.LayoutNode, 0, len(parent.Children)+len(child.Children)-1)
	merged = append(merged, parent.Children[:index]...)
	for _, grandchild := range child.Children {
		if childTotal > 0 {
			grandchild.SizeWeight = child.SizeWeight * grandchild.SizeWeight / childTotal
		}
		grandchild.Parent = parent
		merged = append(merged, grandchild)
	}
	merged = append(merged, parent.Children[index+1:]...)

	parent.Children = merged
	child.Parent = nil
	child.Children = nil
	normalizeWeights(parent)
}

func normalizeWeights(container *entity.LayoutNode) {
	if container.IsLeaf() {
		return
	}

	valid, sum := 0, 0.0
	for _, child := range container.Children {
		if isValidWeight(child.SizeWeight) {
			valid++
			sum += child.SizeWeight
		}
	}
	mean := 1.0
	if valid > 0 {
		mean = sum / float64(valid)
	}

	total := 0.0
	for _, child := range container.Children {
		if !isValidWeight(child.SizeWeight) {
			child.SizeWeight = mean
		}
		total += child.SizeWeight
	}

	scale := float64(len(container.Children)) / total
	for _, child := range container.Children {
		child.SizeWeight *= scale
	}
}

func isValidWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// invalidateTransient drops interaction state that referred to the previous structure.
func invalidateTransient(state *entity.LayoutTreeState) {
	state.PendingAction = nil
	state.ActiveResize = nil
}
