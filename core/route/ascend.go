package route

import (
	"slices"

	"github.com/kilianp07/highway/core/station"
)

// ascend plans a journey toward higher positions. Starting from the
// destination it repeatedly picks the lowest station between origin and the
// current target that can still reach the target, until the origin itself
// is picked.
func (p *Planner) ascend(origin, dest *station.Station) ([]int, error) {
	stops := []*station.Station{dest}
	target, best := dest, dest
	for {
		for cur := target; cur != origin; {
			cur = p.idx.Predecessor(cur)
			if cur == nil {
				return nil, ErrNoRoute
			}
			if _, high := cur.Reach(); high >= target.Position {
				best = cur
			}
		}
		if best == target {
			return nil, ErrNoRoute
		}
		stops = append(stops, best)
		if best == origin {
			slices.Reverse(stops)
			return positions(stops), nil
		}
		target = best
	}
}
