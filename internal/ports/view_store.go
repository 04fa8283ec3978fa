package ports

import (
	"context"
	"cyber-map-service/internal/domain"
)

// Contract for keeping the observer state and the pending zoom target.
// Writes overwrite; the latest value always wins.
type ViewStore interface {
	Observer(ctx context.Context) (domain.ObserverState, error)
	SetObserver(ctx context.Context, state domain.ObserverState) error

	// Return the pending zoom target, ok=false when none was requested yet.
	ZoomTarget(ctx context.Context) (target domain.ZoomTarget, ok bool, err error)
	SetZoomTarget(ctx context.Context, target domain.ZoomTarget) error
}
