package route

import "github.com/kilianp07/highway/core/station"

// descend plans a journey toward lower positions.
//
// The forward pass walks predecessors from the origin in layers: layer j
// holds the stations first reachable with j hops, and the station of each
// layer reaching lowest is committed as the next hop. Layers are contiguous
// runs of the walk, so bounds[j], the lowest position of layer j, is enough
// to tell whether a station can be reached within j hops. The committed hops
// form a minimum-stop journey that canonicalize then rewrites.
func (p *Planner) descend(origin, dest *station.Station) ([]int, error) {
	committed := []*station.Station{origin}
	bounds := []int{origin.Position}
	frontier, _ := origin.Reach()
	best, bestLow := origin, frontier
	last := origin

	for cur := p.idx.Predecessor(origin); ; cur = p.idx.Predecessor(cur) {
		if cur == nil {
			return nil, ErrNoRoute
		}
		if cur.Position < frontier {
			if bestLow >= frontier {
				return nil, ErrNoRoute
			}
			committed = append(committed, best)
			bounds = append(bounds, last.Position)
			frontier = bestLow
			if cur.Position < frontier {
				return nil, ErrNoRoute
			}
		}
		if cur == dest {
			break
		}
		if low, _ := cur.Reach(); low < bestLow {
			best, bestLow = cur, low
		}
		last = cur
	}

	stops, err := p.canonicalize(append(committed, dest), bounds)
	if err != nil {
		return nil, err
	}
	return positions(stops), nil
}

// canonicalize rewrites a descending minimum-stop journey so that, counting
// back from the destination, each stop is the lowest station that is
// reachable within the same number of hops and still reaches the stop after
// it. stops[j] for j < len(bounds) is replaced in place.
func (p *Planner) canonicalize(stops []*station.Station, bounds []int) ([]*station.Station, error) {
	origin := stops[0]
	target := stops[len(stops)-1]
	for j := len(stops) - 2; j >= 0; j-- {
		cur := p.idx.Successor(target)
		for cur != nil && cur.Position <= origin.Position {
			low, _ := cur.Reach()
			if cur.Position >= bounds[j] && low <= target.Position {
				break
			}
			cur = p.idx.Successor(cur)
		}
		if cur == nil || cur.Position > origin.Position {
			return nil, ErrNoRoute
		}
		stops[j] = cur
		target = cur
	}
	return stops, nil
}
