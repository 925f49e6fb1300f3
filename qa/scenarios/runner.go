package scenarios

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/kilianp07/highway/core/highway"
	"github.com/kilianp07/highway/driver"
)

// Mismatch is a reply that differs from the expected one. A missing reply
// is reported with Got empty and an extra one with Want empty.
type Mismatch struct {
	Index int
	Want  string
	Got   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("reply %d: want %q got %q", m.Index+1, m.Want, m.Got)
}

// Result is the outcome of replaying a scenario.
type Result struct {
	Name       string
	Replies    []string
	Mismatches []Mismatch
}

func (r Result) Passed() bool { return len(r.Mismatches) == 0 }

// Run replays the scenario commands through a driver over a fresh highway
// and compares the replies with the expected ones.
func Run(ctx context.Context, sc *Scenario, opts ...driver.Option) (Result, error) {
	hw := highway.New(highway.Options{FleetCapacity: sc.FleetCapacity, RouteCache: sc.RouteCache})
	d := driver.New(hw, opts...)
	var out bytes.Buffer
	if _, err := d.Run(ctx, strings.NewReader(strings.Join(sc.Commands, "\n")), &out); err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	res := Result{Name: sc.Name}
	if text := strings.TrimSuffix(out.String(), "\n"); text != "" {
		res.Replies = strings.Split(text, "\n")
	}
	for i := 0; i < max(len(res.Replies), len(sc.Expected)); i++ {
		var want, got string
		if i < len(sc.Expected) {
			want = sc.Expected[i]
		}
		if i < len(res.Replies) {
			got = res.Replies[i]
		}
		if want != got {
			res.Mismatches = append(res.Mismatches, Mismatch{Index: i, Want: want, Got: got})
		}
	}
	return res, nil
}
