package layout

import (
	"context"
	"fmt"

	"github.com/bnema/tiler/internal/application/usecase"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
)

// DragPhase describes the drag interaction state.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragHovering
	DragPending
)

func (p DragPhase) String() string {
	switch p {
	case DragHovering:
		return "hovering"
	case DragPending:
		return "pending"
	default:
		return "idle"
	}
}

type dragSession struct {
	ctx    context.Context
	nodeID entity.NodeID
	hover  *Throttle
	exit   *Debounce
}

func (s *dragSession) stop() {
	s.hover.Stop()
	s.exit.Cancel()
}

// BeginDrag starts dragging nodeID. A drag already in progress is abandoned
// and its pending move cleared. Dragging is refused while a resize is active.
func (m *Model) BeginDrag(ctx context.Context, nodeID entity.NodeID) (bool, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false, ErrClosed
	}
	if m.resize != nil {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("node_id", string(nodeID)).Msg("drag ignored during resize")
		return false, nil
	}
	if m.state.FindNode(nodeID) == nil {
		m.mu.Unlock()
		return false, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, nodeID)
	}

	var g *entity.Geometry
	if m.drag != nil {
		m.drag.stop()
		g, _ = m.reduceLocked(ctx, usecase.ClearPendingAction{})
	}
	m.drag = &dragSession{
		ctx:    ctx,
		nodeID: nodeID,
		hover:  NewThrottle(m.opts.HoverThrottle),
		exit:   NewDebounce(m.opts.HoverExitDebounce),
	}
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("node_id", string(nodeID)).Msg("drag started")
	m.publish(ctx, g)
	return true, nil
}

// DragPhase reports the current drag phase.
func (m *Model) DragPhase() DragPhase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.drag == nil:
		return DragIdle
	case m.state.PendingAction != nil:
		return DragPending
	default:
		return DragHovering
	}
}

// DragOver reports the pointer at p over targetID. Updates are throttled;
// the latest position in each window wins.
func (m *Model) DragOver(targetID entity.NodeID, p entity.Point) {
	s := m.currentDrag()
	if s == nil {
		return
	}
	s.exit.Cancel()
	s.hover.Call(func() { m.applyHover(s, targetID, p) })
}

// DragLeave reports the pointer leaving every drop target. The pending move
// is cleared after a short delay unless another hover arrives first.
func (m *Model) DragLeave() {
	s := m.currentDrag()
	if s == nil {
		return
	}
	s.hover.Cancel()
	s.exit.Trigger(func() { m.clearPendingFor(s) })
}

// Drop ends the drag over targetID at p and commits the resulting move.
// Dropping outside any classified zone only clears the pending move.
func (m *Model) Drop(ctx context.Context, targetID entity.NodeID, p entity.Point) error {
	m.mu.Lock()
	s := m.drag
	if s == nil {
		m.mu.Unlock()
		return nil
	}
	s.stop()
	m.drag = nil

	action, ok := m.hoverActionLocked(s.nodeID, targetID, p)
	var g *entity.Geometry
	var err error
	if ok {
		g, err = m.reduceLocked(ctx, action)
		if err == nil && m.state.PendingAction != nil {
			if committed, commitErr := m.reduceLocked(ctx, usecase.CommitPendingAction{}); committed != nil {
				g = committed
			} else {
				err = commitErr
			}
		}
	}
	if m.state.PendingAction != nil {
		if cleared, _ := m.reduceLocked(ctx, usecase.ClearPendingAction{}); cleared != nil {
			g = cleared
		}
	}
	m.mu.Unlock()

	log := logging.FromContext(ctx)
	if err != nil {
		log.Warn().Err(err).Str("node_id", string(s.nodeID)).Str("target_id", string(targetID)).Msg("drop rejected")
	} else {
		log.Debug().Str("node_id", string(s.nodeID)).Str("target_id", string(targetID)).Bool("moved", ok).Msg("drag dropped")
	}
	m.publish(ctx, g)
	return err
}

// EndDrag cancels the drag without a drop.
func (m *Model) EndDrag(ctx context.Context) {
	m.mu.Lock()
	s := m.drag
	if s == nil {
		m.mu.Unlock()
		return
	}
	s.stop()
	m.drag = nil
	g, _ := m.reduceLocked(ctx, usecase.ClearPendingAction{})
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("node_id", string(s.nodeID)).Msg("drag cancelled")
	m.publish(ctx, g)
}

func (m *Model) currentDrag() *dragSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drag
}

func (m *Model) applyHover(s *dragSession, targetID entity.NodeID, p entity.Point) {
	m.mu.Lock()
	if m.drag != s {
		m.mu.Unlock()
		return
	}
	if m.state.FindNode(s.nodeID) == nil {
		// Dragged node vanished under a concurrent mutation.
		s.stop()
		m.drag = nil
		g, _ := m.reduceLocked(s.ctx, usecase.ClearPendingAction{})
		m.mu.Unlock()
		m.publish(s.ctx, g)
		return
	}

	action, ok := m.hoverActionLocked(s.nodeID, targetID, p)
	if !ok {
		action = usecase.ClearPendingAction{}
	}
	g, err := m.reduceLocked(s.ctx, action)
	if err != nil {
		logging.FromContext(s.ctx).Debug().Err(err).Str("target_id", string(targetID)).Msg("hover rejected")
		if cleared, _ := m.reduceLocked(s.ctx, usecase.ClearPendingAction{}); cleared != nil {
			g = cleared
		}
	}
	m.mu.Unlock()

	m.publish(s.ctx, g)
}

func (m *Model) clearPendingFor(s *dragSession) {
	m.mu.Lock()
	if m.drag != s {
		m.mu.Unlock()
		return
	}
	g, _ := m.reduceLocked(s.ctx, usecase.ClearPendingAction{})
	m.mu.Unlock()

	m.publish(s.ctx, g)
}

// hoverActionLocked classifies p against the target's current rectangle.
func (m *Model) hoverActionLocked(nodeID, targetID entity.NodeID, p entity.Point) (usecase.Action, bool) {
	if targetID == "" || targetID == nodeID {
		return nil, false
	}
	rect, ok := m.geometry.RectOf(targetID)
	if !ok {
		return nil, false
	}
	dir, ok := entity.ClassifyDropZone(rect, p)
	if !ok {
		return nil, false
	}
	return usecase.ComputeMoveAction{NodeID: nodeID, TargetID: targetID, Direction: dir}, true
}
