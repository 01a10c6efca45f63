// Package layout holds the live layout model: the current tree state, its
// computed geometry, and the drag and resize interaction sessions that feed
// actions into the reducer.
package layout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/tiler/internal/application/port"
	"github.com/bnema/tiler/internal/application/usecase"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/infrastructure/config"
	"github.com/bnema/tiler/internal/logging"
)

// ErrClosed is returned by operations on a closed model.
var ErrClosed = errors.New("layout model closed")

// Options configures a Model.
type Options struct {
	// MinWeightFraction is the smallest share of a container a sibling can be
	// resized down to.
	MinWeightFraction float64
	HandleSize        float64
	MagnifiedInset    float64

	HoverThrottle     time.Duration
	ResizeThrottle    time.Duration
	HoverExitDebounce time.Duration

	IDGenerator entity.IDGenerator
}

// DefaultOptions returns the options used when no configuration is loaded.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Layout)
}

// OptionsFromConfig converts the layout configuration section to model options.
func OptionsFromConfig(cfg config.LayoutConfig) Options {
	return Options{
		MinWeightFraction: cfg.MinWeightPercent / 100,
		HandleSize:        cfg.HandleSize,
		MagnifiedInset:    cfg.MagnifiedInsetPercent / 100,
		HoverThrottle:     time.Duration(cfg.HoverThrottleMs) * time.Millisecond,
		ResizeThrottle:    time.Duration(cfg.ResizeThrottleMs) * time.Millisecond,
		HoverExitDebounce: time.Duration(cfg.HoverExitDebounceMs) * time.Millisecond,
	}
}

func (o Options) geometryOptions() entity.GeometryOptions {
	return entity.GeometryOptions{HandleSize: o.HandleSize, MagnifiedInset: o.MagnifiedInset}
}

// Model owns one layout tree. All mutations go through the reducer under the
// model lock; every accepted change recomputes the geometry, bumps the
// generation counter and notifies observers outside the lock.
type Model struct {
	reducer *usecase.Reducer
	opts    Options

	mu         sync.RWMutex
	state      *entity.LayoutTreeState
	container  entity.Rect
	geometry   *entity.Geometry
	generation uint64
	ready      bool
	closed     bool

	drag   *dragSession
	resize *resizeSession

	observers  map[int]port.LayoutObserver
	observerID int
}

// NewModel creates a model around state. A nil state starts empty.
func NewModel(state *entity.LayoutTreeState, opts Options) *Model {
	if state == nil {
		state = entity.NewLayoutTreeState(nil)
	}
	m := &Model{
		reducer:   usecase.NewReducer(usecase.NewManageLayoutUseCase(opts.IDGenerator)),
		opts:      opts,
		state:     state.Clone(),
		observers: make(map[int]port.LayoutObserver),
	}
	m.geometry = entity.ComputeGeometry(m.state, m.container, opts.geometryOptions())
	return m
}

// NewModelFromSnapshot restores a model from a serialized layout.
func NewModelFromSnapshot(snap *entity.LayoutSnapshot, opts Options) (*Model, error) {
	state, err := entity.StateFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return NewModel(state, opts), nil
}

// Subscribe registers an observer and returns a function that removes it.
func (m *Model) Subscribe(observer port.LayoutObserver) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observerID++
	id := m.observerID
	m.observers[id] = observer
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// SetContainerRect updates the area the layout fills. The model becomes ready
// once a non-empty rectangle has been set.
func (m *Model) SetContainerRect(ctx context.Context, rect entity.Rect) {
	m.mu.Lock()
	if m.closed || m.container == rect {
		m.mu.Unlock()
		return
	}
	m.container = rect
	if !rect.IsEmpty() && !m.ready {
		m.ready = true
		logging.FromContext(ctx).Debug().
			Float64("width", rect.Width).
			Float64("height", rect.Height).
			Msg("layout ready")
	}
	g := m.recomputeLocked()
	m.mu.Unlock()

	m.publish(ctx, g)
}

// SetOptions replaces the model options and recomputes the geometry.
// Interactions already in progress keep their timers. The id generator is
// fixed at construction.
func (m *Model) SetOptions(ctx context.Context, opts Options) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	opts.IDGenerator = m.opts.IDGenerator
	m.opts = opts
	g := m.recomputeLocked()
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Float64("handle_size", opts.HandleSize).
		Float64("min_weight_fraction", opts.MinWeightFraction).
		Msg("layout options updated")
	m.publish(ctx, g)
}

// Dispatch runs action through the reducer and publishes the result.
func (m *Model) Dispatch(ctx context.Context, action usecase.Action) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	g, err := m.reduceLocked(ctx, action)
	m.mu.Unlock()

	m.publish(ctx, g)
	return err
}

// Geometry returns the latest computed geometry. It must not be modified.
func (m *Model) Geometry() *entity.Geometry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.geometry
}

// Generation returns a counter incremented on every published change.
func (m *Model) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// Ready reports whether a non-empty container has been measured.
func (m *Model) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// State returns a copy of the current state.
func (m *Model) State() *entity.LayoutTreeState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// Snapshot returns the serializable form of the current state.
func (m *Model) Snapshot() *entity.LayoutSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return entity.SnapshotFromState(m.state)
}

// PendingAction returns a copy of the pending move, or nil.
func (m *Model) PendingAction() *entity.PendingAction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.PendingAction == nil {
		return nil
	}
	pending := *m.state.PendingAction
	return &pending
}

// Close stops all interaction timers. Further dispatches fail with ErrClosed.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	if m.drag != nil {
		m.drag.stop()
		m.drag = nil
	}
	if m.resize != nil {
		m.resize.stop()
		m.resize = nil
	}
	m.observers = make(map[int]port.LayoutObserver)
}

// reduceLocked applies action and returns the geometry to publish, or nil
// when the state did not change.
func (m *Model) reduceLocked(ctx context.Context, action usecase.Action) (*entity.Geometry, error) {
	next, err := m.reducer.Reduce(ctx, m.state, action)
	if next == m.state {
		return nil, err
	}
	m.state = next
	return m.recomputeLocked(), err
}

func (m *Model) recomputeLocked() *entity.Geometry {
	m.generation++
	g := entity.ComputeGeometry(m.state, m.container, m.opts.geometryOptions())
	g.Generation = m.generation
	m.geometry = g
	return g
}

func (m *Model) publish(ctx context.Context, g *entity.Geometry) {
	if g == nil {
		return
	}
	m.mu.RLock()
	observers := make([]port.LayoutObserver, 0, len(m.observers))
	for _, o := range m.observers {
		observers = append(observers, o)
	}
	m.mu.RUnlock()

	for _, o := range observers {
		o.OnLayoutChanged(ctx, g)
	}
}
