package handlers

import (
	"bytes"
	"cyber-map-service/internal/adapters/export"
	"cyber-map-service/internal/api/dto"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"cyber-map-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RankingHandler serves the distance table.
type RankingHandler struct {
	View View
}

// Ranking returns every point with its distance and the nearest point.
// The optional sort query ("distance" or "-distance") orders the table only;
// without it the points keep source order.
func (h *RankingHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	frame, err := h.View.Sync(r.Context())
	if err != nil {
		obs.From(r.Context()).Error("sync map view failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	order := services.ParseSortOrder(r.URL.Query().Get("sort"))
	rows := services.SortedByDistance(frame.Ranked, order)

	res := dto.RankingResponse{
		Points:   make([]dto.RankedPointResponse, 0, len(rows)),
		Observer: dto.NewObserverResponse(frame.Observer),
	}
	for _, rp := range rows {
		res.Points = append(res.Points, dto.NewRankedPointResponse(rp))
	}
	if frame.Nearest != nil {
		nearest := dto.NewRankedPointResponse(*frame.Nearest)
		res.Nearest = &nearest
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Workbook returns the distance table as an Excel download.
func (h *RankingHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	frame, err := h.View.Sync(r.Context())
	if err != nil {
		obs.From(r.Context()).Error("sync map view failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	order := services.ParseSortOrder(r.URL.Query().Get("sort"))
	rows := make([]domain.RankedPoint, 0, len(frame.Ranked))
	nearestRow := -1
	for row, i := range services.SortedIndices(frame.Ranked, order) {
		if frame.Nearest == &frame.Ranked[i] {
			nearestRow = row
		}
		rows = append(rows, frame.Ranked[i])
	}

	var buf bytes.Buffer
	if err := export.WriteRankingXLSX(&buf, rows, nearestRow); err != nil {
		obs.From(r.Context()).Error("write workbook failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="distances.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
