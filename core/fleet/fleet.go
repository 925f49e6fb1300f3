package fleet

import (
	"errors"
	"math"
	"slices"
)

// DefaultCapacity is the number of vehicles a station can park.
const DefaultCapacity = 512

var (
	ErrFleetFull    = errors.New("fleet is full")
	ErrNoSuchRange  = errors.New("no vehicle with this range")
	ErrInvalidRange = errors.New("range out of bounds")
)

// Fleet is a bounded multiset of vehicle ranges. Ranges are kept sorted in
// ascending order so the best range is always the last element.
type Fleet struct {
	ranges   []int
	capacity int
}

// New returns an empty fleet holding at most capacity vehicles. A
// non-positive capacity selects DefaultCapacity.
func New(capacity int) *Fleet {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Fleet{capacity: capacity}
}

// MaxRange is the longest range a vehicle can declare.
const MaxRange = math.MaxInt32

// Add parks a vehicle with the given range.
func (f *Fleet) Add(r int) error {
	if r < 0 || r > MaxRange {
		return ErrInvalidRange
	}
	if len(f.ranges) >= f.capacity {
		return ErrFleetFull
	}
	i, _ := slices.BinarySearch(f.ranges, r)
	f.ranges = slices.Insert(f.ranges, i, r)
	return nil
}

// Remove scraps one vehicle whose range equals r.
func (f *Fleet) Remove(r int) error {
	i, ok := slices.BinarySearch(f.ranges, r)
	if !ok {
		return ErrNoSuchRange
	}
	f.ranges = slices.Delete(f.ranges, i, i+1)
	return nil
}

// Contains reports whether a vehicle with range r is parked.
func (f *Fleet) Contains(r int) bool {
	_, ok := slices.BinarySearch(f.ranges, r)
	return ok
}

// Best returns the largest range in the fleet, or 0 when it is empty.
func (f *Fleet) Best() int {
	if len(f.ranges) == 0 {
		return 0
	}
	return f.ranges[len(f.ranges)-1]
}

func (f *Fleet) Len() int { return len(f.ranges) }
func (f *Fleet) Cap() int { return f.capacity }

// Ranges returns a copy of the parked ranges in ascending order.
func (f *Fleet) Ranges() []int {
	out := make([]int, len(f.ranges))
	copy(out, f.ranges)
	return out
}
