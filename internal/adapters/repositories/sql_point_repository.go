package repositories

import (
	"bytes"
	"context"
	"cyber-map-service/internal/domain"
	"cyber-map-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type pointRow struct {
	Seq      int     `db:"seq"`
	PointID  string  `db:"point_id"`
	Name     string  `db:"name"`
	Address  string  `db:"address"`
	Lat      float64 `db:"lat"`
	Lon      float64 `db:"lon"`
	Metadata string  `db:"metadata"`
}

// SQL-backed implementation of the PointSource port (SQLite or Postgres).
type SQLPointRepository struct{ DB *sqlx.DB }

func NewSQLPointRepository(db *sqlx.DB) *SQLPointRepository {
	return &SQLPointRepository{DB: db}
}

// Return all stored points in their seeded order.
func (s *SQLPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.sql.ListPoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql point repository: DB is nil")
	}

	query := `
	SELECT
		seq,
		point_id,
		name,
		address,
		lat,
		lon,
		metadata
	FROM points
	ORDER BY seq;
	`

	var rows []pointRow
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list points: query points table: %w", err)
	}

	points := make([]domain.Point, 0, len(rows))
	for _, r := range rows {
		meta, err := decodeMetadata(r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("list points: point_id=%s: %w", r.PointID, err)
		}

		points = append(points, domain.Point{
			ID:          r.PointID,
			Name:        r.Name,
			Address:     r.Address,
			Coordinates: domain.Coordinates{Lat: r.Lat, Lon: r.Lon},
			Metadata:    meta,
		})
	}

	return points, nil
}

func decodeMetadata(s string) (map[string]any, error) {
	meta := map[string]any{}
	if s == "" {
		return meta, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}
