package viewstore

import (
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

type observerRecord struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Enabled bool    `json:"enabled"`
}

type zoomRecord struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// Redis backed ViewStore so several service replicas share one observer and
// zoom target. Values are stored as JSON under "<prefix>:observer" and
// "<prefix>:zoom"; a plain SET gives latest-wins semantics.
type RedisViewStore struct {
	client *redis.Client
	prefix string
}

func NewRedisViewStore(client *redis.Client, prefix string) (*RedisViewStore, error) {
	if client == nil {
		return nil, errors.New("redis view store: client is nil")
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "cybermap"
	}

	return &RedisViewStore{client: client, prefix: prefix}, nil
}

func (s *RedisViewStore) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisViewStore) Observer(ctx context.Context) (_ domain.ObserverState, err error) {
	defer obs.Time(ctx, "viewstore.redis.Observer")(&err)

	var rec observerRecord
	found, err := s.get(ctx, s.key("observer"), &rec)
	if err != nil {
		return domain.ObserverState{}, fmt.Errorf("get observer: %w", err)
	}
	if !found {
		return domain.ObserverState{}, nil
	}

	return domain.ObserverState{
		Position: domain.Coordinates{Lat: rec.Lat, Lon: rec.Lon},
		Enabled:  rec.Enabled,
	}, nil
}

func (s *RedisViewStore) SetObserver(ctx context.Context, state domain.ObserverState) error {
	rec := observerRecord{
		Lat:     state.Position.Lat,
		Lon:     state.Position.Lon,
		Enabled: state.Enabled,
	}
	if err := s.set(ctx, s.key("observer"), rec); err != nil {
		return fmt.Errorf("set observer: %w", err)
	}
	return nil
}

func (s *RedisViewStore) ZoomTarget(ctx context.Context) (_ domain.ZoomTarget, _ bool, err error) {
	defer obs.Time(ctx, "viewstore.redis.ZoomTarget")(&err)

	var rec zoomRecord
	found, err := s.get(ctx, s.key("zoom"), &rec)
	if err != nil {
		return domain.ZoomTarget{}, false, fmt.Errorf("get zoom target: %w", err)
	}
	if !found {
		return domain.ZoomTarget{}, false, nil
	}

	return domain.ZoomTarget{
		Coordinates: domain.Coordinates{Lat: rec.Lat, Lon: rec.Lon},
		Zoom:        rec.Zoom,
	}, true, nil
}

func (s *RedisViewStore) SetZoomTarget(ctx context.Context, target domain.ZoomTarget) error {
	rec := zoomRecord{
		Lat:  target.Coordinates.Lat,
		Lon:  target.Coordinates.Lon,
		Zoom: target.Zoom,
	}
	if err := s.set(ctx, s.key("zoom"), rec); err != nil {
		return fmt.Errorf("set zoom target: %w", err)
	}
	return nil
}

func (s *RedisViewStore) get(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (s *RedisViewStore) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	if err := s.client.Set(ctx, key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
