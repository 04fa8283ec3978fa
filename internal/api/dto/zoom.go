package dto

import (
	"bytes"
	"cyber-map-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
)

// ZoomRequest accepts the presentation callback's [lat, lon] pair as well as
// {"latitude": .., "longitude": ..}.
type ZoomRequest struct {
	Latitude  float64
	Longitude float64
}

func (z *ZoomRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return fmt.Errorf("zoom pair: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("zoom pair: want 2 values, got %d", len(pair))
		}
		z.Latitude, z.Longitude = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("zoom object: %w", err)
	}
	if obj.Latitude == nil || obj.Longitude == nil {
		return errors.New("zoom object: latitude and longitude are required")
	}
	z.Latitude, z.Longitude = *obj.Latitude, *obj.Longitude
	return nil
}

type ZoomResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

func NewZoomResponse(t domain.ZoomTarget) ZoomResponse {
	return ZoomResponse{
		Latitude:  t.Coordinates.Lat,
		Longitude: t.Coordinates.Lon,
		Zoom:      t.Zoom,
	}
}
