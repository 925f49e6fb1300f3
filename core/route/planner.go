// Package route plans minimum-stop journeys between stations.
//
// A hop from station A to station B is allowed when |A-B| <= A.BestRange()
// and B lies between A and the destination. Among all journeys with the
// fewest stops the planner returns the canonical one: counting back from the
// destination, every stop is the lowest position that still belongs to some
// minimum-stop journey and reaches the stop chosen after it.
package route

import (
	"errors"

	"github.com/kilianp07/highway/core/station"
)

var ErrNoRoute = errors.New("no route")

// Index is the read-only view of the station index walked by the planner.
type Index interface {
	Len() int
	Find(pos int) (*station.Station, bool)
	Successor(s *station.Station) *station.Station
	Predecessor(s *station.Station) *station.Station
}

// Direction of travel along the road.
type Direction int

const (
	Stationary Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "stationary"
	}
}

// DirectionOf returns the direction of a journey from origin to dest.
func DirectionOf(origin, dest int) Direction {
	switch {
	case origin < dest:
		return Ascending
	case origin > dest:
		return Descending
	default:
		return Stationary
	}
}

// Planner answers route queries against an index it never mutates.
type Planner struct {
	idx Index
}

func NewPlanner(idx Index) *Planner { return &Planner{idx: idx} }

// Plan returns the stop positions from origin to dest, both included.
func (p *Planner) Plan(origin, dest int) ([]int, error) {
	if p.idx.Len() < 2 {
		return nil, ErrNoRoute
	}
	from, ok := p.idx.Find(origin)
	if !ok {
		return nil, ErrNoRoute
	}
	to, ok := p.idx.Find(dest)
	if !ok {
		return nil, ErrNoRoute
	}
	switch DirectionOf(origin, dest) {
	case Ascending:
		return p.ascend(from, to)
	case Descending:
		return p.descend(from, to)
	default:
		return []int{origin}, nil
	}
}

func positions(stops []*station.Station) []int {
	out := make([]int, len(stops))
	for i, s := range stops {
		out[i] = s.Position
	}
	return out
}
