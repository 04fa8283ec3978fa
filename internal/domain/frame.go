package domain

import "time"

// Represents one recompute pass of the map view.
// A Frame is derived wholesale from its inputs and is never updated in place:
// Ranked preserves the order of the point set and Nearest, when set, points
// at the element of Ranked with minimal distance.
type Frame struct {
	Ranked     []RankedPoint
	Nearest    *RankedPoint
	Observer   ObserverState
	ComputedAt time.Time
}
