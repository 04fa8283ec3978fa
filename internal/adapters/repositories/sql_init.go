package repositories

import (
	"context"
	"cyber-map-service/internal/adapters/pointsource"
	"cyber-map-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Initialize the points schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS points (
		seq INTEGER PRIMARY KEY,
		point_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		metadata TEXT NOT NULL
	);
	`

	statements := []string{
		createPointsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the points table from a JSON file shaped like the remote points API.
func SeedFromJSON(ctx context.Context, db *sqlx.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed points: read %q: %w", jsonPath, err)
	}

	var data []pointsource.PointRecord
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed points: parse json: %w", err)
	}

	points := make([]domain.Point, 0, len(data))
	for _, r := range data {
		points = append(points, r.ToDomain())
	}

	return ReplacePoints(ctx, db, points)
}

// ReplacePoints swaps the stored point set for points, keeping their order.
func ReplacePoints(ctx context.Context, db *sqlx.DB, points []domain.Point) error {
	if db == nil {
		return errors.New("replace points: DB is nil")
	}

	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("replace points: item at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("replace points: item at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points;`); err != nil {
		return fmt.Errorf("replace points: clear table: %w", err)
	}

	query := tx.Rebind(`
	INSERT INTO points (
		seq,
		point_id,
		name,
		address,
		lat,
		lon,
		metadata
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("replace points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		meta, err := encodeMetadata(p.Metadata)
		if err != nil {
			return fmt.Errorf("replace points: point_id=%s: %w", p.ID, err)
		}

		id := strings.TrimSpace(p.ID)
		lat, lon := p.Coordinates.Lat, p.Coordinates.Lon
		if _, err := stmt.ExecContext(ctx, i, id, p.Name, p.Address, lat, lon, meta); err != nil {
			return fmt.Errorf("replace points: insert point_id=%s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace points: commit tx: %w", err)
	}

	return nil
}

func encodeMetadata(meta map[string]any) (string, error) {
	if len(meta) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}
