package port

import (
	"context"

	"github.com/bnema/tiler/internal/domain/entity"
)

// LayoutObserver is notified whenever the layout model publishes a new
// geometry snapshot. Implemented by the rendering layer.
type LayoutObserver interface {
	// OnLayoutChanged receives the new, fully formed snapshot.
	// It is called outside the model's lock and may read the model back.
	OnLayoutChanged(ctx context.Context, geometry *entity.Geometry)
}

// LayoutSource exposes the persistable part of a layout.
type LayoutSource interface {
	Snapshot() *entity.LayoutSnapshot
}

// LayoutStore persists layout snapshots.
type LayoutStore interface {
	SaveLayout(ctx context.Context, snap *entity.LayoutSnapshot) error
}
