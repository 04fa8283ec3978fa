package handlers

import (
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// View is what the handlers need from the map view service.
type View interface {
	Load(ctx context.Context) error
	Points() []domain.Point
	Sync(ctx context.Context) (domain.Frame, error)
	Observer(ctx context.Context) (domain.ObserverState, error)
	SetObserver(ctx context.Context, state domain.ObserverState) error
	ZoomTarget(ctx context.Context) (domain.ZoomTarget, bool, error)
	SetZoomTarget(ctx context.Context, c domain.Coordinates) error
}

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.From(r.Context()).Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain only one JSON value")
	}
	return nil
}
