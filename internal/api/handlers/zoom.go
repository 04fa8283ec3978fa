package handlers

import (
	"cyber-map-service/internal/api/dto"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"net/http"

	"go.uber.org/zap"
)

// ZoomHandler relays zoom-to-point requests. The latest request wins.
type ZoomHandler struct {
	View View
}

func (h *ZoomHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.ZoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c := domain.Coordinates{Lat: req.Latitude, Lon: req.Longitude}
	if err := h.View.SetZoomTarget(r.Context(), c); err != nil {
		obs.From(r.Context()).Error("set zoom target failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.NewZoomResponse(domain.NewZoomTarget(c)))
}

func (h *ZoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	target, ok, err := h.View.ZoomTarget(r.Context())
	if err != nil {
		obs.From(r.Context()).Error("get zoom target failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewZoomResponse(target))
}
