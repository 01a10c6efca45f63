package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
)

// Action is a discriminated layout action accepted by Reducer.Reduce.
type Action interface {
	// Kind returns a stable name for logging.
	Kind() string
}

// ComputeMoveAction records a tentative move derived from drag-hover state.
type ComputeMoveAction struct {
	NodeID    entity.NodeID
	TargetID  entity.NodeID
	Direction entity.DropDirection
}

// CommitPendingAction applies the pending move, if any.
type CommitPendingAction struct{}

// ClearPendingAction drops the pending move without touching the tree.
type ClearPendingAction struct{}

// InsertNodeAction inserts a node under ParentID at Index.
type InsertNodeAction struct {
	ParentID entity.NodeID
	Node     *entity.LayoutNode
	Index    int
}

// RemoveNodeAction removes a node and its subtree.
type RemoveNodeAction struct {
	NodeID entity.NodeID
}

// MagnifyNodeAction toggles magnification of a leaf. An empty id clears it.
type MagnifyNodeAction struct {
	NodeID entity.NodeID
}

// ResizeMoveAction records in-progress weights for the two siblings around a handle.
type ResizeMoveAction struct {
	ContainerID entity.NodeID
	Index       int
	Weights     [2]float64
}

// ResizeEndAction commits the in-progress resize into the tree.
type ResizeEndAction struct{}

// FocusNodeAction focuses a leaf.
type FocusNodeAction struct {
	NodeID entity.NodeID
}

// SwapNodesAction exchanges the positions of two nodes.
type SwapNodesAction struct {
	NodeA entity.NodeID
	NodeB entity.NodeID
}

// SplitNodeAction inserts a new node next to TargetID.
type SplitNodeAction struct {
	TargetID  entity.NodeID
	Node      *entity.LayoutNode
	Direction entity.DropDirection
}

func (ComputeMoveAction) Kind() string   { return "compute_move" }
func (CommitPendingAction) Kind() string { return "commit_pending_action" }
func (ClearPendingAction) Kind() string  { return "clear_pending_action" }
func (InsertNodeAction) Kind() string    { return "insert_node" }
func (RemoveNodeAction) Kind() string    { return "remove_node" }
func (MagnifyNodeAction) Kind() string   { return "magnify_node" }
func (ResizeMoveAction) Kind() string    { return "resize_move" }
func (ResizeEndAction) Kind() string     { return "resize_end" }
func (FocusNodeAction) Kind() string     { return "focus_node" }
func (SwapNodesAction) Kind() string     { return "swap_nodes" }
func (SplitNodeAction) Kind() string     { return "split_node" }

// Reducer is the single entry point for layout state transitions.
type Reducer struct {
	layout *ManageLayoutUseCase
}

// NewReducer creates a reducer backed by the given layout use case.
func NewReducer(layout *ManageLayoutUseCase) *Reducer {
	if layout == nil {
		layout = NewManageLayoutUseCase(nil)
	}
	return &Reducer{layout: layout}
}

// Reduce returns the state following action. The input state is never
// modified. On a recognized no-op the input state itself is returned with a
// nil error; on failure the input state is returned with the error, so the
// caller always holds a fully formed state.
func (r *Reducer) Reduce(ctx context.Context, state *entity.LayoutTreeState, action Action) (*entity.LayoutTreeState, error) {
	log := logging.FromContext(ctx)
	if state == nil {
		state = entity.NewLayoutTreeState(nil)
	}
	if action == nil {
		return state, fmt.Errorf("action is required")
	}

	next := state.Clone()
	err := r.apply(ctx, next, action)
	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, entity.ErrNoOp):
		log.Debug().Err(err).Str("action", action.Kind()).Msg("layout action had no effect")
		return state, nil
	default:
		log.Warn().Err(err).Str("action", action.Kind()).Msg("layout action rejected")
		return state, err
	}
}

func (r *Reducer) apply(ctx context.Context, next *entity.LayoutTreeState, action Action) error {
	switch a := action.(type) {
	case ComputeMoveAction:
		return r.computeMove(next, a)

	case CommitPendingAction:
		pending := next.PendingAction
		if pending == nil {
			return fmt.Errorf("%w: nothing pending", entity.ErrNoOp)
		}
		next.PendingAction = nil
		return r.layout.Move(ctx, next, pending.NodeID, pending.TargetID, pending.Direction)

	case ClearPendingAction:
		if next.PendingAction == nil {
			return fmt.Errorf("%w: nothing pending", entity.ErrNoOp)
		}
		next.PendingAction = nil
		return nil

	case InsertNodeAction:
		return r.layout.Insert(ctx, next, a.ParentID, cloneDetached(a.Node), a.Index)

	case RemoveNodeAction:
		_, err := r.layout.Remove(ctx, next, a.NodeID)
		return err

	case MagnifyNodeAction:
		return r.layout.Magnify(ctx, next, a.NodeID)

	case ResizeMoveAction:
		return r.layout.SetResizeWeights(ctx, next, a.ContainerID, a.Index, a.Weights)

	case ResizeEndAction:
		return r.layout.CommitResize(ctx, next)

	case FocusNodeAction:
		return r.layout.Focus(ctx, next, a.NodeID)

	case SwapNodesAction:
		return r.layout.Swap(ctx, next, a.NodeA, a.NodeB)

	case SplitNodeAction:
		return r.layout.Split(ctx, next, SplitInput{TargetID: a.TargetID, Node: cloneDetached(a.Node), Direction: a.Direction})

	default:
		return fmt.Errorf("unknown layout action %T", action)
	}
}

// computeMove records the pending move. Hovering the dragged node itself,
// one of its descendants, or an unclassified zone clears any pending move.
func (r *Reducer) computeMove(next *entity.LayoutTreeState, a ComputeMoveAction) error {
	if next.ActiveResize != nil {
		return fmt.Errorf("%w: resize in progress", entity.ErrNoOp)
	}
	_, _, err := r.layout.ValidateMove(next, a.NodeID, a.TargetID, a.Direction)
	switch {
	case err == nil:
		pending := &entity.PendingAction{
			NodeID:    a.NodeID,
			TargetID:  a.TargetID,
			Direction: a.Direction,
		}
		if next.PendingAction != nil && *next.PendingAction == *pending {
			return fmt.Errorf("%w: pending move unchanged", entity.ErrNoOp)
		}
		next.PendingAction = pending
		return nil
	case errors.Is(err, entity.ErrNoOp), errors.Is(err, entity.ErrInvalidMove):
		if next.PendingAction == nil {
			return fmt.Errorf("%w: %v", entity.ErrNoOp, err)
		}
		next.PendingAction = nil
		return nil
	default:
		return err
	}
}

// cloneDetached copies a caller-supplied subtree so the action value stays reusable.
func cloneDetached(node *entity.LayoutNode) *entity.LayoutNode {
	if node == nil {
		return nil
	}
	return node.Clone()
}
