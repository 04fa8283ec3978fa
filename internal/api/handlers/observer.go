package handlers

import (
	"cyber-map-service/internal/api/dto"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"net/http"

	"go.uber.org/zap"
)

// ObserverHandler receives position fixes from the geolocation control.
type ObserverHandler struct {
	View View
}

func (h *ObserverHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req dto.ObserverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	state := domain.ObserverState{Enabled: enabled}
	if enabled && (req.Latitude == nil || req.Longitude == nil) {
		WriteError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return
	}
	if req.Latitude != nil {
		state.Position.Lat = *req.Latitude
	}
	if req.Longitude != nil {
		state.Position.Lon = *req.Longitude
	}

	if err := h.View.SetObserver(r.Context(), state); err != nil {
		obs.From(r.Context()).Error("set observer failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewObserverResponse(state))
}

func (h *ObserverHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.View.Observer(r.Context())
	if err != nil {
		obs.From(r.Context()).Error("get observer failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewObserverResponse(state))
}
