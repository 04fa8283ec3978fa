package domain

// Represents a single geolocated place shown on the map.
// Points are produced by a PointSource and are never mutated while a
// ranking pass runs; a refresh replaces the whole set.
type Point struct {
	ID          string
	Name        string
	Address     string
	Coordinates Coordinates
	// Metadata carries source fields (e.g. printers) through unmodified.
	Metadata map[string]any
}

// A Point annotated with its distance from the observer.
// DistanceKm is 0 when no observer fix is available.
type RankedPoint struct {
	Point
	DistanceKm float64
	Position   Coordinates
}

// The end user's position. Enabled is false until a geolocation fix succeeds.
type ObserverState struct {
	Position Coordinates
	Enabled  bool
}
