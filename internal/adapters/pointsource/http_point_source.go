package pointsource

import (
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// PointsPath is the collection endpoint of the upstream points API.
const PointsPath = "/api/cybers"

// HTTPPointSource implements PointSource against the remote points API.
//
// It issues one GET per ListPoints call. There is no pagination, auth or
// retry; the caller decides what a failed fetch means.
type HTTPPointSource struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewHTTPPointSource(baseURL string, timeout time.Duration) (*HTTPPointSource, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("points base url is empty")
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPPointSource{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: "cyber-map-service/1.0",
	}, nil
}

func (s *HTTPPointSource) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.http.ListPoints")(&err)

	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+PointsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, fmt.Errorf("list points: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []PointRecord
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("list points: decode response: %w", err)
	}

	points := make([]domain.Point, 0, len(decoded))
	for _, r := range decoded {
		points = append(points, r.ToDomain())
	}

	return points, nil
}
