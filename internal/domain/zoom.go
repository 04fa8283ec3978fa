package domain

// DefaultZoomLevel is the map zoom used when recentering on a point.
const DefaultZoomLevel = 16

// ZoomTarget is the latest zoom-to-point request.
type ZoomTarget struct {
	Coordinates Coordinates
	Zoom        int
}

func NewZoomTarget(c Coordinates) ZoomTarget {
	return ZoomTarget{Coordinates: c, Zoom: DefaultZoomLevel}
}
