package dto

import (
	"cyber-map-service/internal/domain"
	"math"
)

type PointResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	Metadata  map[string]any `json:"metadata"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}

type RefreshResponse struct {
	Points int `json:"points"`
}

type RankedPointResponse struct {
	PointResponse
	DistanceKm *float64    `json:"distance_km"`
	Position   [2]*float64 `json:"position"`
}

type RankingResponse struct {
	Points   []RankedPointResponse `json:"points"`
	Nearest  *RankedPointResponse  `json:"nearest"`
	Observer ObserverResponse      `json:"observer"`
}

func NewPointResponse(p domain.Point) PointResponse {
	meta := p.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return PointResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Latitude:  Finite(p.Coordinates.Lat),
		Longitude: Finite(p.Coordinates.Lon),
		Metadata:  meta,
	}
}

func NewRankedPointResponse(r domain.RankedPoint) RankedPointResponse {
	pos := r.Position.Pair()
	return RankedPointResponse{
		PointResponse: NewPointResponse(r.Point),
		DistanceKm:    Finite(r.DistanceKm),
		Position:      [2]*float64{Finite(pos[0]), Finite(pos[1])},
	}
}

// Finite returns nil for NaN and infinities, which JSON cannot carry.
func Finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
