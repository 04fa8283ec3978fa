package domain

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lon], the order map widgets expect.
func (c Coordinates) Pair() [2]float64 { return [2]float64{c.Lat, c.Lon} }

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) LonLat() [2]float64 { return [2]float64{c.Lon, c.Lat} }
