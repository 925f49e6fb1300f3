// Package station holds the ordered index of stations along the road.
//
// Stations live in an arena-backed red-black tree keyed by position. Tree
// links are int32 slots into the arena; slot 0 is the black sentinel that
// stands in for every leaf and for the root's parent.
package station

import (
	"errors"
	"math"

	"github.com/kilianp07/highway/core/fleet"
)

var (
	ErrAlreadyExists = errors.New("station already exists")
	ErrNotFound      = errors.New("station not found")
)

// Station is a point on the road holding a fleet of vehicles.
type Station struct {
	Position int
	Fleet    *fleet.Fleet

	ref int32
}

// BestRange returns the longest range available at the station.
func (s *Station) BestRange() int { return s.Fleet.Best() }

// Reach returns the lowest and highest positions a single hop from s can
// land on, saturating at the ends of int.
func (s *Station) Reach() (low, high int) {
	r := s.BestRange()
	low, high = math.MinInt, math.MaxInt
	if s.Position >= math.MinInt+r {
		low = s.Position - r
	}
	if s.Position <= math.MaxInt-r {
		high = s.Position + r
	}
	return low, high
}

// Snapshot is a detached copy of a station used for export and reporting.
type Snapshot struct {
	Position  int   `json:"position"`
	BestRange int   `json:"best_range"`
	Vehicles  []int `json:"vehicles"`
}

func (s *Station) Snapshot() Snapshot {
	return Snapshot{Position: s.Position, BestRange: s.BestRange(), Vehicles: s.Fleet.Ranges()}
}

// InsertReport describes the outcome of seeding a new station.
type InsertReport struct {
	Station *Station
	// Dropped counts seed ranges rejected by the fleet (negative values or
	// vehicles beyond capacity).
	Dropped int
}
