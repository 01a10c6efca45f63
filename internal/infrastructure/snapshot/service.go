package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/tiler/internal/application/port"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/logging"
)

const defaultInterval = 2 * time.Second

// Service writes the layout to a store a short while after it stops changing.
// It implements port.LayoutObserver so it can subscribe to a layout model.
type Service struct {
	source   port.LayoutSource
	store    port.LayoutStore
	interval time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	dirty  bool
	ctx    context.Context
	cancel context.CancelFunc
}

var _ port.LayoutObserver = (*Service)(nil)

// NewService creates a snapshot service. A non-positive interval uses the default.
func NewService(source port.LayoutSource, store port.LayoutStore, interval time.Duration) *Service {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		source:   source,
		store:    store,
		interval: interval,
	}
}

// Start enables debounced saves. Changes seen before Start are kept dirty.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("layout autosave started")
}

// Stop cancels any scheduled save and flushes pending changes.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	return s.SaveNow(ctx)
}

// OnLayoutChanged marks the layout dirty.
func (s *Service) OnLayoutChanged(_ context.Context, _ *entity.Geometry) {
	s.MarkDirty()
}

// MarkDirty schedules a save, restarting the debounce window.
func (s *Service) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}
		if err := s.save(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to autosave layout")
		}
	})
}

// Dirty reports whether changes are waiting to be saved.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SaveNow writes pending changes immediately.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	snap := s.source.Snapshot()
	if snap == nil {
		return nil
	}
	if err := s.store.SaveLayout(ctx, snap); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	logging.FromContext(ctx).Debug().Msg("layout saved")
	return nil
}
