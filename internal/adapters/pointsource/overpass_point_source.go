package pointsource

import (
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"
)

const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassPointSource lists internet cafes from OpenStreetMap inside a
// bounding box ("south,west,north,east" in degrees).
type OverpassPointSource struct {
	client *overpass.Client
	bbox   string
}

func NewOverpassPointSource(endpoint string, bbox string, timeout time.Duration) (*OverpassPointSource, error) {
	bbox = strings.ReplaceAll(strings.TrimSpace(bbox), " ", "")
	if err := validateBBox(bbox); err != nil {
		return nil, fmt.Errorf("new overpass point source: %w", err)
	}

	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultOverpassEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := overpass.NewWithSettings(endpoint, 1, &http.Client{Timeout: timeout})
	return &OverpassPointSource{client: &client, bbox: bbox}, nil
}

func (s *OverpassPointSource) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.overpass.ListPoints")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		[out:json];
		node["amenity"="internet_cafe"](%s);
		out body;
	`, s.bbox)

	result, err := s.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	ids := make([]int64, 0, len(result.Nodes))
	for id := range result.Nodes {
		ids = append(ids, id)
	}
	// Overpass returns a map; order by OSM id so the set is stable across fetches.
	slices.Sort(ids)

	points := make([]domain.Point, 0, len(ids))
	for _, id := range ids {
		node := result.Nodes[id]
		points = append(points, pointFromOSM(node.ID, node.Lat, node.Lon, node.Tags))
	}

	return points, nil
}

func pointFromOSM(id int64, lat, lon float64, tags map[string]string) domain.Point {
	meta := make(map[string]any, len(tags))
	for k, v := range tags {
		if k == "name" {
			continue
		}
		meta[k] = v
	}

	return domain.Point{
		ID:          "osm/node/" + strconv.FormatInt(id, 10),
		Name:        tags["name"],
		Address:     osmAddress(tags),
		Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
		Metadata:    meta,
	}
}

func osmAddress(tags map[string]string) string {
	if full := strings.TrimSpace(tags["addr:full"]); full != "" {
		return full
	}

	street := strings.TrimSpace(strings.Join([]string{tags["addr:street"], tags["addr:housenumber"]}, " "))
	parts := make([]string, 0, 2)
	if street != "" {
		parts = append(parts, street)
	}
	if city := strings.TrimSpace(tags["addr:city"]); city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}

func validateBBox(bbox string) error {
	if bbox == "" {
		return errors.New("bounding box is empty")
	}

	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return fmt.Errorf("bounding box %q: want south,west,north,east", bbox)
	}
	for _, p := range parts {
		if _, err := strconv.ParseFloat(p, 64); err != nil {
			return fmt.Errorf("bounding box %q: %w", bbox, err)
		}
	}
	return nil
}
