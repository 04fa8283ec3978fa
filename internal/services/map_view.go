package services

import (
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"cyber-map-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// MapView is the update loop behind the map page.
//
// It holds the latest inputs (point set, observer state, zoom target) and
// recomputes the ranking wholesale whenever the point set or the observer
// changes. Readers get the last computed Frame, which is never modified after
// it is published.
type MapView struct {
	source  ports.PointSource
	store   ports.ViewStore
	metrics *obs.Metrics
	now     func() time.Time

	// fetches counts started loads; applied is the fetch behind points.
	fetches atomic.Uint64

	mu      sync.RWMutex
	applied uint64
	points  []domain.Point
	frame   domain.Frame
}

func NewMapView(source ports.PointSource, store ports.ViewStore, metrics *obs.Metrics) (*MapView, error) {
	if source == nil {
		return nil, errors.New("new map view: point source is nil")
	}
	if store == nil {
		return nil, errors.New("new map view: view store is nil")
	}

	v := &MapView{
		source:  source,
		store:   store,
		metrics: metrics,
		now:     time.Now,
		points:  []domain.Point{},
	}
	v.frame = domain.Frame{Ranked: []domain.RankedPoint{}, ComputedAt: v.now()}

	return v, nil
}

// Load fetches the point set once and replaces the current set on success.
//
// A failed fetch is logged and leaves the current set in place, which is the
// empty set before the first successful load. The error is returned so that
// callers who asked for the fetch explicitly can report it. When loads
// overlap, a fetch that started before the applied one is discarded.
func (v *MapView) Load(ctx context.Context) (err error) {
	log, ctx := obs.SubFrom(ctx, "mapview")
	defer obs.Time(ctx, "mapview.Load")(&err)

	seq := v.fetches.Add(1)
	points, err := v.source.ListPoints(ctx)
	if err != nil {
		v.countFetch("error")
		log.Warn("point fetch failed; keeping current point set", zap.Error(err))
		return fmt.Errorf("load points: %w", err)
	}
	v.countFetch("ok")

	if points == nil {
		points = []domain.Point{}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq < v.applied {
		log.Info("stale point fetch discarded", zap.Uint64("fetch", seq), zap.Uint64("applied", v.applied))
		return nil
	}

	observer, err := v.store.Observer(ctx)
	if err != nil {
		return fmt.Errorf("load points: read observer: %w", err)
	}

	v.applied = seq
	v.points = points
	v.recomputeLocked(observer)
	if v.metrics != nil {
		v.metrics.Points.Set(float64(len(points)))
	}

	log.Info("point set replaced", zap.Int("points", len(points)))
	return nil
}

// SetObserver records a new observer state and recomputes the ranking.
func (v *MapView) SetObserver(ctx context.Context, state domain.ObserverState) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.SetObserver(ctx, state); err != nil {
		return fmt.Errorf("set observer: %w", err)
	}

	v.recomputeLocked(state)
	return nil
}

// Observer returns the last stored observer state.
func (v *MapView) Observer(ctx context.Context) (domain.ObserverState, error) {
	state, err := v.store.Observer(ctx)
	if err != nil {
		return domain.ObserverState{}, fmt.Errorf("get observer: %w", err)
	}
	return state, nil
}

// SetZoomTarget stores the most recent zoom-to-point request, overwriting any
// pending one.
func (v *MapView) SetZoomTarget(ctx context.Context, c domain.Coordinates) error {
	if err := v.store.SetZoomTarget(ctx, domain.NewZoomTarget(c)); err != nil {
		return fmt.Errorf("set zoom target: %w", err)
	}
	return nil
}

// ZoomTarget returns the pending zoom target; ok is false when none was requested.
func (v *MapView) ZoomTarget(ctx context.Context) (domain.ZoomTarget, bool, error) {
	target, ok, err := v.store.ZoomTarget(ctx)
	if err != nil {
		return domain.ZoomTarget{}, false, fmt.Errorf("get zoom target: %w", err)
	}
	return target, ok, nil
}

// Points returns the current raw point set.
func (v *MapView) Points() []domain.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.points
}

// Frame returns the most recently computed frame.
func (v *MapView) Frame() domain.Frame {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frame
}

// Sync re-reads the observer from the view store and recomputes when it
// differs from the one the current frame was built with. Replicas sharing a
// store call this before serving a frame. The store is read under the same
// lock SetObserver writes under, so a Sync never publishes an older observer.
func (v *MapView) Sync(ctx context.Context) (domain.Frame, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	observer, err := v.store.Observer(ctx)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("sync map view: %w", err)
	}

	if observer != v.frame.Observer {
		v.recomputeLocked(observer)
	}
	return v.frame, nil
}

func (v *MapView) recomputeLocked(observer domain.ObserverState) {
	ranked, nearest := RankPoints(v.points, observer)
	v.frame = domain.Frame{
		Ranked:     ranked,
		Nearest:    nearest,
		Observer:   observer,
		ComputedAt: v.now(),
	}

	if v.metrics != nil {
		v.metrics.Recomputes.Inc()
	}
}

func (v *MapView) countFetch(outcome string) {
	if v.metrics != nil {
		v.metrics.PointFetches.WithLabelValues(outcome).Inc()
	}
}
