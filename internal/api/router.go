package api

import (
	"cyber-map-service/internal/api/handlers"
	"cyber-map-service/internal/platform/obs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(view handlers.View, logger *zap.Logger, metrics *obs.Metrics, gatherer prometheus.Gatherer) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware(logger), loggingMiddleware(metrics))
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlers.WriteError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlers.WriteError(w, req, http.StatusNotFound, "not found")
	})

	pointHandler := &handlers.PointHandler{View: view}
	observerHandler := &handlers.ObserverHandler{View: view}
	rankingHandler := &handlers.RankingHandler{View: view}
	zoomHandler := &handlers.ZoomHandler{View: view}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/points", pointHandler.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/points/refresh", pointHandler.Refresh).Methods(http.MethodPost)
	apiRouter.HandleFunc("/points.geojson", pointHandler.Markers).Methods(http.MethodGet)
	apiRouter.HandleFunc("/observer", observerHandler.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/observer", observerHandler.Put).Methods(http.MethodPut)
	apiRouter.HandleFunc("/ranking", rankingHandler.Ranking).Methods(http.MethodGet)
	apiRouter.HandleFunc("/ranking.xlsx", rankingHandler.Workbook).Methods(http.MethodGet)
	apiRouter.HandleFunc("/zoom", zoomHandler.Get).Methods(http.MethodGet)
	apiRouter.HandleFunc("/zoom", zoomHandler.Post).Methods(http.MethodPost)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return r
}
