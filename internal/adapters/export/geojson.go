package export

import (
	"cyber-map-service/internal/domain"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MarkerCollection renders a ranked point set as GeoJSON point features for
// the map's marker layer. The nearest point is flagged in its properties and
// must be nil or an element of ranked.
func MarkerCollection(ranked []domain.RankedPoint, nearest *domain.RankedPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i := range ranked {
		r := &ranked[i]
		if !finite(r.Position.Lat) || !finite(r.Position.Lon) {
			// no place to put a marker
			continue
		}

		f := geojson.NewFeature(orb.Point(r.Position.LonLat()))
		f.ID = r.ID
		f.Properties["id"] = r.ID
		f.Properties["name"] = r.Name
		f.Properties["address"] = r.Address
		// NaN is not valid JSON; malformed coordinates show up as null.
		if finite(r.DistanceKm) {
			f.Properties["distance_km"] = r.DistanceKm
		} else {
			f.Properties["distance_km"] = nil
		}
		// nearest points into ranked; ids may repeat or be empty.
		f.Properties["nearest"] = nearest == r
		if len(r.Metadata) > 0 {
			f.Properties["metadata"] = r.Metadata
		}
		fc.Append(f)
	}

	return fc
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
