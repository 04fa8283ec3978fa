package ports

import (
	"context"
	"cyber-map-service/internal/domain"
)

// Port: a boundary for retrieving the candidate points shown on the map.
type PointSource interface {
	// Retrieve the full point set. Order is meaningful and must be preserved.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}
