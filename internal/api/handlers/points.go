package handlers

import (
	"cyber-map-service/internal/adapters/export"
	"cyber-map-service/internal/api/dto"
	"cyber-map-service/internal/platform/obs"
	"net/http"

	"go.uber.org/zap"
)

// PointHandler exposes the raw point set and the marker layer.
type PointHandler struct {
	View View
}

func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	pts := h.View.Points()

	res := dto.ListPointsResponse{
		Points: make([]dto.PointResponse, 0, len(pts)),
	}
	for _, p := range pts {
		res.Points = append(res.Points, dto.NewPointResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Refresh fetches the point set again. Unlike the startup load, the caller
// asked for this fetch, so a failure is reported.
func (h *PointHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.View.Load(r.Context()); err != nil {
		WriteError(w, r, http.StatusBadGateway, "point source unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RefreshResponse{Points: len(h.View.Points())})
}

// Markers returns the ranked point set as a GeoJSON FeatureCollection.
func (h *PointHandler) Markers(w http.ResponseWriter, r *http.Request) {
	frame, err := h.View.Sync(r.Context())
	if err != nil {
		obs.From(r.Context()).Error("sync map view failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	fc := export.MarkerCollection(frame.Ranked, frame.Nearest)
	b, err := fc.MarshalJSON()
	if err != nil {
		obs.From(r.Context()).Error("encode markers failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
