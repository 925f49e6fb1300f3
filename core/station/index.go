package station

import (
	"iter"

	"github.com/kilianp07/highway/core/fleet"
)

type color uint8

const (
	red color = iota
	black
)

const nilRef int32 = 0

type node struct {
	station *Station
	color   color
	left    int32
	right   int32
	parent  int32
}

// Index is an ordered map from position to station. It is not safe for
// concurrent use.
type Index struct {
	nodes         []node
	free          []int32
	root          int32
	size          int
	fleetCapacity int
}

// NewIndex returns an empty index whose stations park at most
// fleetCapacity vehicles each.
func NewIndex(fleetCapacity int) *Index {
	return &Index{
		nodes:         []node{{color: black}},
		fleetCapacity: fleetCapacity,
	}
}

func (t *Index) Len() int { return t.size }

// Insert creates a station at pos seeded with the given ranges.
func (t *Index) Insert(pos int, ranges ...int) (InsertReport, error) {
	y, x := nilRef, t.root
	for x != nilRef {
		y = x
		n := &t.nodes[x]
		switch {
		case pos < n.station.Position:
			x = n.left
		case pos > n.station.Position:
			x = n.right
		default:
			return InsertReport{}, ErrAlreadyExists
		}
	}

	s := &Station{Position: pos, Fleet: fleet.New(t.fleetCapacity)}
	rep := InsertReport{Station: s}
	for _, r := range ranges {
		if err := s.Fleet.Add(r); err != nil {
			rep.Dropped++
		}
	}

	z := t.alloc(s)
	zn := &t.nodes[z]
	zn.parent = y
	zn.color = red
	switch {
	case y == nilRef:
		t.root = z
	case pos < t.nodes[y].station.Position:
		t.nodes[y].left = z
	default:
		t.nodes[y].right = z
	}
	t.insertFixup(z)
	t.size++
	return rep, nil
}

// Remove deletes the station at pos together with its fleet.
func (t *Index) Remove(pos int) error {
	z := t.lookup(pos)
	if z == nilRef {
		return ErrNotFound
	}
	t.delete(z)
	t.release(z)
	t.size--
	return nil
}

// Find returns the station at pos.
func (t *Index) Find(pos int) (*Station, bool) {
	x := t.lookup(pos)
	if x == nilRef {
		return nil, false
	}
	return t.nodes[x].station, true
}

// Min returns the station with the lowest position, nil if the index is empty.
func (t *Index) Min() *Station { return t.stationAt(t.minimum(t.root)) }

// Max returns the station with the highest position, nil if the index is empty.
func (t *Index) Max() *Station { return t.stationAt(t.maximum(t.root)) }

// Successor returns the next station by position, nil at the end of the
// road or when s is no longer indexed.
func (t *Index) Successor(s *Station) *Station {
	x := t.refOf(s)
	if x == nilRef {
		return nil
	}
	return t.stationAt(t.next(x))
}

// Predecessor returns the previous station by position, nil at the start of
// the road or when s is no longer indexed.
func (t *Index) Predecessor(s *Station) *Station {
	x := t.refOf(s)
	if x == nilRef {
		return nil
	}
	return t.stationAt(t.prev(x))
}

// All yields the stations in ascending position order. The index must not
// be mutated while iterating.
func (t *Index) All() iter.Seq[*Station] {
	return func(yield func(*Station) bool) {
		for x := t.minimum(t.root); x != nilRef; x = t.next(x) {
			if !yield(t.nodes[x].station) {
				return
			}
		}
	}
}

// Positions returns every station position in ascending order.
func (t *Index) Positions() []int {
	out := make([]int, 0, t.size)
	for s := range t.All() {
		out = append(out, s.Position)
	}
	return out
}

// Snapshot copies every station in ascending order.
func (t *Index) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, t.size)
	for s := range t.All() {
		out = append(out, s.Snapshot())
	}
	return out
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Index) Height() int { return t.height(t.root) }

func (t *Index) height(x int32) int {
	if x == nilRef {
		return 0
	}
	return 1 + max(t.height(t.nodes[x].left), t.height(t.nodes[x].right))
}

func (t *Index) alloc(s *Station) int32 {
	var x int32
	if n := len(t.free); n > 0 {
		x = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node{})
		x = int32(len(t.nodes) - 1)
	}
	t.nodes[x] = node{station: s}
	s.ref = x
	return x
}

func (t *Index) release(x int32) {
	t.nodes[x].station.ref = nilRef
	t.nodes[x] = node{}
	t.free = append(t.free, x)
	// The sentinel parent is scratch space during delete.
	t.nodes[nilRef] = node{color: black}
}

func (t *Index) refOf(s *Station) int32 {
	if s == nil || s.ref == nilRef || int(s.ref) >= len(t.nodes) || t.nodes[s.ref].station != s {
		return nilRef
	}
	return s.ref
}

func (t *Index) stationAt(x int32) *Station {
	if x == nilRef {
		return nil
	}
	return t.nodes[x].station
}

func (t *Index) lookup(pos int) int32 {
	x := t.root
	for x != nilRef {
		n := &t.nodes[x]
		switch {
		case pos < n.station.Position:
			x = n.left
		case pos > n.station.Position:
			x = n.right
		default:
			return x
		}
	}
	return nilRef
}

func (t *Index) minimum(x int32) int32 {
	if x == nilRef {
		return nilRef
	}
	for t.nodes[x].left != nilRef {
		x = t.nodes[x].left
	}
	return x
}

func (t *Index) maximum(x int32) int32 {
	if x == nilRef {
		return nilRef
	}
	for t.nodes[x].right != nilRef {
		x = t.nodes[x].right
	}
	return x
}

func (t *Index) next(x int32) int32 {
	if r := t.nodes[x].right; r != nilRef {
		return t.minimum(r)
	}
	y := t.nodes[x].parent
	for y != nilRef && x == t.nodes[y].right {
		x = y
		y = t.nodes[y].parent
	}
	return y
}

func (t *Index) prev(x int32) int32 {
	if l := t.nodes[x].left; l != nilRef {
		return t.maximum(l)
	}
	y := t.nodes[x].parent
	for y != nilRef && x == t.nodes[y].left {
		x = y
		y = t.nodes[y].parent
	}
	return y
}
