package station

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies ordering, parent links and red-black rules.
func checkInvariants(t *Index) error {
	if t.colorOf(t.root) != black {
		return fmt.Errorf("root is red")
	}
	if t.root != nilRef && t.nodes[t.root].parent != nilRef {
		return fmt.Errorf("root has a parent")
	}
	count := 0
	var walk func(x int32, lo, hi int) (int, error)
	walk = func(x int32, lo, hi int) (int, error) {
		if x == nilRef {
			return 1, nil
		}
		count++
		n := t.nodes[x]
		if n.station == nil || n.station.ref != x {
			return 0, fmt.Errorf("slot %d has a stale station", x)
		}
		p := n.station.Position
		if p <= lo || p >= hi {
			return 0, fmt.Errorf("position %d outside (%d,%d)", p, lo, hi)
		}
		for _, c := range []int32{n.left, n.right} {
			if c != nilRef && t.nodes[c].parent != x {
				return 0, fmt.Errorf("child %d of %d has wrong parent", c, x)
			}
			if n.color == red && t.colorOf(c) == red {
				return 0, fmt.Errorf("red node %d has a red child", p)
			}
		}
		lh, err := walk(n.left, lo, p)
		if err != nil {
			return 0, err
		}
		rh, err := walk(n.right, p, hi)
		if err != nil {
			return 0, err
		}
		if lh != rh {
			return 0, fmt.Errorf("black height mismatch at %d: %d vs %d", p, lh, rh)
		}
		if n.color == black {
			lh++
		}
		return lh, nil
	}
	if _, err := walk(t.root, math.MinInt, math.MaxInt); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("size %d but %d reachable nodes", t.size, count)
	}
	return nil
}

func TestIndexInsertFind(t *testing.T) {
	idx := NewIndex(0)
	rep, err := idx.Insert(20, 5, 15, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Dropped)
	assert.Equal(t, 15, rep.Station.BestRange())

	s, ok := idx.Find(20)
	require.True(t, ok)
	assert.Same(t, rep.Station, s)

	if _, ok := idx.Find(21); ok {
		t.Fatalf("expected missing station")
	}
	if _, err := idx.Insert(20); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists got %v", err)
	}
	assert.Equal(t, 1, idx.Len())
}

func TestIndexInsertDropsSeedsBeyondCapacity(t *testing.T) {
	idx := NewIndex(2)
	rep, err := idx.Insert(0, 1, -4, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, []int{1, 2}, rep.Station.Fleet.Ranges())
}

func TestIndexRemove(t *testing.T) {
	idx := NewIndex(0)
	for _, p := range []int{5, 1, 9} {
		_, err := idx.Insert(p)
		require.NoError(t, err)
	}
	require.NoError(t, idx.Remove(5))
	if err := idx.Remove(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
	assert.Equal(t, []int{1, 9}, idx.Positions())
	require.NoError(t, checkInvariants(idx))
}

func TestIndexNeighbours(t *testing.T) {
	idx := NewIndex(0)
	for _, p := range []int{30, 10, 50, 20, 40} {
		_, err := idx.Insert(p)
		require.NoError(t, err)
	}
	assert.Equal(t, 10, idx.Min().Position)
	assert.Equal(t, 50, idx.Max().Position)

	var up []int
	for s := idx.Min(); s != nil; s = idx.Successor(s) {
		up = append(up, s.Position)
	}
	assert.Equal(t, []int{10, 20, 30, 40, 50}, up)

	var down []int
	for s := idx.Max(); s != nil; s = idx.Predecessor(s) {
		down = append(down, s.Position)
	}
	assert.Equal(t, []int{50, 40, 30, 20, 10}, down)
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex(0)
	assert.Nil(t, idx.Min())
	assert.Nil(t, idx.Max())
	assert.Equal(t, 0, idx.Height())
	assert.Empty(t, idx.Positions())
	assert.Nil(t, idx.Successor(nil))
}

func TestIndexStaleHandle(t *testing.T) {
	idx := NewIndex(0)
	rep, err := idx.Insert(7)
	require.NoError(t, err)
	_, err = idx.Insert(8)
	require.NoError(t, err)
	require.NoError(t, idx.Remove(7))
	assert.Nil(t, idx.Successor(rep.Station))
	assert.Nil(t, idx.Predecessor(rep.Station))

	// The freed slot is recycled without resurrecting the old handle.
	_, err = idx.Insert(3)
	require.NoError(t, err)
	assert.Nil(t, idx.Successor(rep.Station))
	require.NoError(t, checkInvariants(idx))
}

func TestIndexRoundTrip(t *testing.T) {
	idx := NewIndex(0)
	for _, p := range []int{4, 8, 15, 16, 23, 42} {
		_, err := idx.Insert(p)
		require.NoError(t, err)
	}
	before := idx.Positions()
	_, err := idx.Insert(19)
	require.NoError(t, err)
	require.NoError(t, idx.Remove(19))
	assert.Equal(t, before, idx.Positions())
	require.NoError(t, checkInvariants(idx))
}

func TestIndexRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	idx := NewIndex(0)
	live := map[int]bool{}
	for i := 0; i < 4000; i++ {
		p := rng.Intn(600)
		if rng.Intn(3) > 0 {
			_, err := idx.Insert(p)
			if live[p] {
				require.ErrorIs(t, err, ErrAlreadyExists)
			} else {
				require.NoError(t, err)
				live[p] = true
			}
		} else {
			err := idx.Remove(p)
			if live[p] {
				require.NoError(t, err)
				delete(live, p)
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
		}
		if i%50 == 0 {
			if err := checkInvariants(idx); err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
		}
	}
	require.NoError(t, checkInvariants(idx))

	want := make([]int, 0, len(live))
	for p := range live {
		want = append(want, p)
	}
	slices.Sort(want)
	assert.Equal(t, want, idx.Positions())
}

func TestIndexHeightIsLogarithmic(t *testing.T) {
	idx := NewIndex(0)
	// Sorted insertion is the worst case for an unbalanced tree.
	for p := 0; p < 1<<12; p++ {
		_, err := idx.Insert(p)
		require.NoError(t, err)
	}
	for p := 0; p < 1<<12; p += 3 {
		require.NoError(t, idx.Remove(p))
	}
	n := idx.Len()
	limit := 2 * math.Log2(float64(n+1))
	if float64(idx.Height()) > limit {
		t.Fatalf("height %d exceeds %.1f for %d stations", idx.Height(), limit, n)
	}
	require.NoError(t, checkInvariants(idx))
}

func TestIndexSnapshot(t *testing.T) {
	idx := NewIndex(0)
	_, err := idx.Insert(2, 3, 1)
	require.NoError(t, err)
	_, err = idx.Insert(1)
	require.NoError(t, err)
	snap := idx.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Snapshot{Position: 1, BestRange: 0, Vehicles: []int{}}, snap[0])
	assert.Equal(t, Snapshot{Position: 2, BestRange: 3, Vehicles: []int{1, 3}}, snap[1])
}

func TestStationReachSaturates(t *testing.T) {
	idx := NewIndex(0)
	for _, pos := range []int{math.MinInt + 5, 0, math.MaxInt - 5} {
		_, err := idx.Insert(pos, math.MaxInt32)
		require.NoError(t, err)
	}
	low, high := idx.Min().Reach()
	assert.Equal(t, math.MinInt, low)
	assert.Equal(t, math.MinInt+5+math.MaxInt32, high)

	low, high = idx.Max().Reach()
	assert.Equal(t, math.MaxInt-5-math.MaxInt32, low)
	assert.Equal(t, math.MaxInt, high)

	s, ok := idx.Find(0)
	require.True(t, ok)
	low, high = s.Reach()
	assert.Equal(t, -math.MaxInt32, low)
	assert.Equal(t, math.MaxInt32, high)
}
