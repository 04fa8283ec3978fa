package viewstore

import (
	"context"
	"cyber-map-service/internal/domain"
	"sync"
)

// In-process ViewStore. The zero value is ready to use.
type MemoryViewStore struct {
	mu       sync.RWMutex
	observer domain.ObserverState
	zoom     *domain.ZoomTarget
}

func NewMemoryViewStore() *MemoryViewStore {
	return &MemoryViewStore{}
}

func (s *MemoryViewStore) Observer(ctx context.Context) (domain.ObserverState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.observer, nil
}

func (s *MemoryViewStore) SetObserver(ctx context.Context, state domain.ObserverState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = state
	return nil
}

func (s *MemoryViewStore) ZoomTarget(ctx context.Context) (domain.ZoomTarget, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.zoom == nil {
		return domain.ZoomTarget{}, false, nil
	}
	return *s.zoom, true, nil
}

func (s *MemoryViewStore) SetZoomTarget(ctx context.Context, target domain.ZoomTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = &target
	return nil
}
