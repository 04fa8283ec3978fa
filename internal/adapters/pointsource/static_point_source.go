package pointsource

import (
	"context"
	"cyber-map-service/internal/domain"
	"slices"
	"sync"
)

// StaticPointSource serves a fixed point set, or a fixed error.
type StaticPointSource struct {
	mu     sync.Mutex
	points []domain.Point
	err    error
	calls  int
}

func NewStaticPointSource(points []domain.Point) *StaticPointSource {
	return &StaticPointSource{points: points}
}

func NewFailingPointSource(err error) *StaticPointSource {
	return &StaticPointSource{err: err}
}

func (s *StaticPointSource) ListPoints(ctx context.Context) ([]domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.points), nil
}

// Replace swaps the served set; a later ListPoints returns the new one.
func (s *StaticPointSource) Replace(points []domain.Point, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = points
	s.err = err
}

// Calls reports how many times ListPoints ran.
func (s *StaticPointSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
