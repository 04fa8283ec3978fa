package services

import (
	"cyber-map-service/internal/domain"
	"slices"
)

// RankPoints annotates every point with its distance from the observer and
// selects the nearest one.
//
// The ranked slice has the same length and order as points. Without an
// observer fix every distance is 0 and nearest is nil. Ties keep the first
// point in input order.
func RankPoints(points []domain.Point, observer domain.ObserverState) ([]domain.RankedPoint, *domain.RankedPoint) {
	ranked := make([]domain.RankedPoint, 0, len(points))
	for _, p := range points {
		d := 0.0
		if observer.Enabled {
			d = HaversineKm(observer.Position, p.Coordinates)
		}
		ranked = append(ranked, domain.RankedPoint{
			Point:      p,
			DistanceKm: d,
			Position:   p.Coordinates,
		})
	}

	if !observer.Enabled || len(ranked) == 0 {
		return ranked, nil
	}

	// Left fold with strict comparison: an equal distance never replaces the
	// current best, and neither does NaN.
	best := 0
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKm < ranked[best].DistanceKm {
			best = i
		}
	}

	return ranked, &ranked[best]
}

// SortOrder selects how SortedByDistance orders a ranked table.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// ParseSortOrder maps the table's sort query value to a SortOrder.
// Unknown values fall back to SortNone.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "distance", "+distance", "asc":
		return SortAscending
	case "-distance", "desc":
		return SortDescending
	default:
		return SortNone
	}
}

// SortedIndices returns the positions of ranked in display order. The sort
// is stable so points at equal distance keep input order.
func SortedIndices(ranked []domain.RankedPoint, order SortOrder) []int {
	idx := make([]int, len(ranked))
	for i := range idx {
		idx[i] = i
	}
	if order == SortNone {
		return idx
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		da, db := ranked[a].DistanceKm, ranked[b].DistanceKm
		if order == SortDescending {
			da, db = db, da
		}
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
		return 0
	})

	return idx
}

// SortedByDistance returns a copy of ranked in SortedIndices order.
func SortedByDistance(ranked []domain.RankedPoint, order SortOrder) []domain.RankedPoint {
	out := make([]domain.RankedPoint, 0, len(ranked))
	for _, i := range SortedIndices(ranked, order) {
		out = append(out, ranked[i])
	}
	return out
}
