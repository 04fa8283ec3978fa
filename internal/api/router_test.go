package api

import (
	"bytes"
	"context"
	"cyber-map-service/internal/adapters/pointsource"
	"cyber-map-service/internal/adapters/viewstore"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"cyber-map-service/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testApp struct {
	router http.Handler
	source *pointsource.StaticPointSource
	view   *services.MapView
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	source := pointsource.NewStaticPointSource([]domain.Point{
		{ID: "p1", Name: "P1", Address: "a1", Coordinates: domain.Coordinates{Lat: 0, Lon: 0}, Metadata: map[string]any{"printers": "1"}},
		{ID: "p2", Name: "P2", Address: "a2", Coordinates: domain.Coordinates{Lat: 0, Lon: 1}},
		{ID: "p3", Name: "P3", Address: "a3", Coordinates: domain.Coordinates{Lat: 0, Lon: 2}},
	})

	reg := prometheus.NewRegistry()
	metrics := obs.NewMetrics(reg)
	view, err := services.NewMapView(source, viewstore.NewMemoryViewStore(), metrics)
	require.NoError(t, err)
	require.NoError(t, view.Load(context.Background()))

	return &testApp{
		router: NewRouter(view, nil, metrics, reg),
		source: source,
		view:   view,
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

type rankingBody struct {
	Points []struct {
		ID         string      `json:"id"`
		DistanceKm *float64    `json:"distance_km"`
		Position   [2]*float64 `json:"position"`
	} `json:"points"`
	Nearest *struct {
		ID string `json:"id"`
	} `json:"nearest"`
	Observer struct {
		Enabled bool `json:"enabled"`
	} `json:"observer"`
}

func decodeRanking(t *testing.T, rr *httptest.ResponseRecorder) rankingBody {
	t.Helper()
	var body rankingBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestListPoints(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodGet, "/api/points", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Points []struct {
			ID       string         `json:"id"`
			Latitude float64        `json:"latitude"`
			Metadata map[string]any `json:"metadata"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Points, 3)
	assert.Equal(t, "p1", body.Points[0].ID)
	assert.Equal(t, "1", body.Points[0].Metadata["printers"])
	assert.Equal(t, map[string]any{}, body.Points[1].Metadata)
}

func TestRankingWithoutObserver(t *testing.T) {
	a := newTestApp(t)

	body := decodeRanking(t, a.do(http.MethodGet, "/api/ranking", ""))

	require.Len(t, body.Points, 3)
	for _, p := range body.Points {
		require.NotNil(t, p.DistanceKm)
		assert.Equal(t, 0.0, *p.DistanceKm)
	}
	assert.Nil(t, body.Nearest)
	assert.False(t, body.Observer.Enabled)
}

func TestObserverThenRanking(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodPut, "/api/observer", `{"latitude": 0, "longitude": 1.8}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"latitude":0,"longitude":1.8,"enabled":true}`, rr.Body.String())

	body := decodeRanking(t, a.do(http.MethodGet, "/api/ranking", ""))
	require.Len(t, body.Points, 3)
	assert.Equal(t, "p1", body.Points[0].ID)
	assert.InDelta(t, 200.15, *body.Points[0].DistanceKm, 0.1)
	require.NotNil(t, body.Nearest)
	assert.Equal(t, "p3", body.Nearest.ID)
	assert.True(t, body.Observer.Enabled)

	// position is [lat, lon], the order the map widget expects
	require.NotNil(t, body.Points[1].Position[0])
	require.NotNil(t, body.Points[1].Position[1])
	assert.Equal(t, 0.0, *body.Points[1].Position[0])
	assert.Equal(t, 1.0, *body.Points[1].Position[1])

	sorted := decodeRanking(t, a.do(http.MethodGet, "/api/ranking?sort=distance", ""))
	assert.Equal(t, "p3", sorted.Points[0].ID)
	assert.Equal(t, "p1", sorted.Points[2].ID)

	rr = a.do(http.MethodGet, "/api/observer", "")
	assert.JSONEq(t, `{"latitude":0,"longitude":1.8,"enabled":true}`, rr.Body.String())
}

func TestObserverDisabled(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodPut, "/api/observer", `{"enabled": false}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeRanking(t, a.do(http.MethodGet, "/api/ranking", ""))
	assert.Nil(t, body.Nearest)
}

func TestObserverBadRequests(t *testing.T) {
	a := newTestApp(t)

	for _, body := range []string{
		`{"latitude": 1}`,
		`{"latitude": 1, "longitude": 2, "altitude": 3}`,
		`not json`,
		`{"latitude": 1, "longitude": 2}{}`,
	} {
		rr := a.do(http.MethodPut, "/api/observer", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestZoom(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodGet, "/api/zoom", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = a.do(http.MethodPost, "/api/zoom", `[10.5, -20.25]`)
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = a.do(http.MethodPost, "/api/zoom", `{"latitude": 1, "longitude": 2}`)
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = a.do(http.MethodGet, "/api/zoom", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"latitude":1,"longitude":2,"zoom":16}`, rr.Body.String())

	for _, body := range []string{
		`[1]`,
		`[1,2,3]`,
		`{"latitude": 1}`,
		`"x"`,
		`{"latitude": 1, "longitude": 2, "zoom": 3}`,
	} {
		rr = a.do(http.MethodPost, "/api/zoom", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestRefresh(t *testing.T) {
	a := newTestApp(t)

	a.source.Replace([]domain.Point{{ID: "only"}}, nil)
	rr := a.do(http.MethodPost, "/api/points/refresh", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"points":1}`, rr.Body.String())

	a.source.Replace(nil, errors.New("down"))
	rr = a.do(http.MethodPost, "/api/points/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Len(t, a.view.Points(), 1)
}

func TestMarkers(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodGet, "/api/points.geojson", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/geo+json", rr.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, []float64{1, 0}, fc.Features[1].Geometry.Coordinates)
}

func TestWorkbook(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodGet, "/api/ranking.xlsx", "")
	require.Equal(t, http.StatusOK, rr.Code)

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Distances")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestWorkbookFlagsNearestRowWhenSorted(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/observer", `{"latitude": 0, "longitude": 1.8}`).Code)

	rr := a.do(http.MethodGet, "/api/ranking.xlsx?sort=-distance", "")
	require.Equal(t, http.StatusOK, rr.Code)

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Distances")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var flagged []string
	for _, row := range rows[1:] {
		if len(row) > 6 && row[6] == "yes" {
			flagged = append(flagged, row[0])
		}
	}
	assert.Equal(t, []string{"p3"}, flagged)
	assert.Equal(t, "p3", rows[3][0])
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	a := newTestApp(t)

	rr := a.do(http.MethodDelete, "/api/ranking", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rr.Body.String())

	rr = a.do(http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	a.do(http.MethodGet, "/api/ranking", "")
	rr := a.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `cybermap_http_requests_total{method="GET",route="/api/ranking",status="200"} 1`)
	assert.Contains(t, rr.Body.String(), "cybermap_points 3")
}
