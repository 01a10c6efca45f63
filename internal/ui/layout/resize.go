package layout

import (
	"context"

	"github.com/bnema/tiler/internal/application/usecase"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
)

type resizeSession struct {
	ctx    context.Context
	handle entity.ResizeHandle
	start  [2]float64
	total  float64
	extent float64
	origin float64
	moves  *Throttle
}

func (s *resizeSession) stop() {
	s.moves.Stop()
}

// BeginResize captures the pointer on a resize handle. It returns false when
// the request is ignored: a drag or another resize is in progress, or a move
// is pending.
func (m *Model) BeginResize(ctx context.Context, handleIndex int) (bool, error) {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	if m.resize != nil || m.drag != nil || m.state.PendingAction != nil {
		log.Debug().Int("handle", handleIndex).Msg("resize ignored during another interaction")
		return false, nil
	}

	h, ok := m.geometry.Handle(handleIndex)
	if !ok {
		return false, entity.ErrInvalidHandle
	}
	container := m.state.FindNode(h.ContainerID)
	if !handleMatches(container, h) {
		return false, entity.ErrInvalidHandle
	}
	rect, _ := m.geometry.RectOf(h.ContainerID)

	s := &resizeSession{
		ctx:    ctx,
		handle: h,
		start:  [2]float64{container.Children[h.ChildIndex].SizeWeight, container.Children[h.ChildIndex+1].SizeWeight},
		total:  container.TotalWeight(),
		extent: rect.Width,
		origin: h.Boundary,
		moves:  NewThrottle(m.opts.ResizeThrottle),
	}
	if h.FlexDirection == entity.FlexColumn {
		s.extent = rect.Height
	}
	m.resize = s

	log.Debug().
		Int("handle", handleIndex).
		Str("container_id", string(h.ContainerID)).
		Float64("boundary", h.Boundary).
		Msg("resize started")
	return true, nil
}

// Resizing reports whether a resize session is active.
func (m *Model) Resizing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resize != nil
}

// ResizeMove reports the captured pointer at p. Updates are throttled.
func (m *Model) ResizeMove(p entity.Point) {
	m.mu.RLock()
	s := m.resize
	m.mu.RUnlock()
	if s == nil {
		return
	}
	s.moves.Call(func() { m.applyResize(s, p) })
}

// EndResize applies the last pointer position and commits the weights.
// It does nothing when no resize is active.
func (m *Model) EndResize(ctx context.Context) error {
	m.mu.RLock()
	s := m.resize
	m.mu.RUnlock()
	if s == nil {
		return nil
	}
	s.moves.Flush()
	s.stop()

	m.mu.Lock()
	if m.resize != s {
		m.mu.Unlock()
		return nil
	}
	m.resize = nil
	g, err := m.reduceLocked(ctx, usecase.ResizeEndAction{})
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("container_id", string(s.handle.ContainerID)).Msg("resize ended")
	m.publish(ctx, g)
	return err
}

// PointerCaptureAcquired is the host's capture notification for a handle.
func (m *Model) PointerCaptureAcquired(ctx context.Context, handleIndex int) (bool, error) {
	return m.BeginResize(ctx, handleIndex)
}

// PointerCaptureLost ends the resize as if the pointer had been released.
func (m *Model) PointerCaptureLost(ctx context.Context) error {
	return m.EndResize(ctx)
}

func (m *Model) applyResize(s *resizeSession, p entity.Point) {
	m.mu.Lock()
	if m.resize != s {
		m.mu.Unlock()
		return
	}
	if !handleMatches(m.state.FindNode(s.handle.ContainerID), s.handle) {
		// Tree changed under the handle.
		s.stop()
		m.resize = nil
		m.mu.Unlock()
		logging.FromContext(s.ctx).Debug().Str("container_id", string(s.handle.ContainerID)).Msg("resize aborted")
		return
	}

	displacement := p.X - s.origin
	if s.handle.FlexDirection == entity.FlexColumn {
		displacement = p.Y - s.origin
	}
	weights := usecase.ComputeResizeWeights(s.start, s.total, s.extent, displacement, m.opts.MinWeightFraction)
	g, err := m.reduceLocked(s.ctx, usecase.ResizeMoveAction{
		ContainerID: s.handle.ContainerID,
		Index:       s.handle.ChildIndex,
		Weights:     weights,
	})
	m.mu.Unlock()

	if err != nil {
		logging.FromContext(s.ctx).Debug().Err(err).Msg("resize move rejected")
	}
	m.publish(s.ctx, g)
}

func handleMatches(container *entity.LayoutNode, h entity.ResizeHandle) bool {
	if container == nil || h.ChildIndex < 0 || h.ChildIndex+1 >= len(container.Children) {
		return false
	}
	return container.Children[h.ChildIndex].ID == h.FirstID &&
		container.Children[h.ChildIndex+1].ID == h.SecondID
}
