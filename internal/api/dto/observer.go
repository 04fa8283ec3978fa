package dto

import "cyber-map-service/internal/domain"

type ObserverRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Enabled   *bool    `json:"enabled"`
}

type ObserverResponse struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Enabled   bool     `json:"enabled"`
}

func NewObserverResponse(s domain.ObserverState) ObserverResponse {
	return ObserverResponse{
		Latitude:  Finite(s.Position.Lat),
		Longitude: Finite(s.Position.Lon),
		Enabled:   s.Enabled,
	}
}
