// Package driver runs the line-oriented command protocol against a highway.
//
// Each input line holds one command followed by integer arguments separated
// by whitespace. Every well-formed command produces exactly one reply line.
// Blank lines are skipped; unknown commands and malformed arguments are
// logged and produce no reply.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/highway/core/highway"
	"github.com/kilianp07/highway/core/logger"
)

var errMalformed = errors.New("malformed command")

// Journal records processed commands.
type Journal interface {
	Record(ctx context.Context, line, command, reply string) error
}

// Stats summarizes a Run.
type Stats struct {
	Lines   int
	Replies int
	Skipped int
}

// Driver parses commands and renders the highway's answers.
type Driver struct {
	hw      *highway.Highway
	log     logger.Logger
	journal Journal
}

// Option customizes a Driver.
type Option func(*Driver)

// WithLogger sets the logger receiving warnings about rejected lines.
func WithLogger(l logger.Logger) Option { return func(d *Driver) { d.log = l } }

// WithJournal records every replied command.
func WithJournal(j Journal) Option { return func(d *Driver) { d.journal = j } }

// New creates a driver over hw.
func New(hw *highway.Highway, opts ...Option) *Driver {
	d := &Driver{hw: hw, log: logger.Nop{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Run executes every line of r and writes the replies to w. It stops at the
// end of input, on a read or write error, or when ctx is canceled. Output is
// flushed before returning.
func (d *Driver) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var st Stats
	out := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	err := func() error {
		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			st.Lines++
			line := sc.Text()
			reply, ok := d.Exec(ctx, line)
			if !ok {
				st.Skipped++
				continue
			}
			st.Replies++
			if _, err := out.WriteString(reply); err != nil {
				return err
			}
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
		return sc.Err()
	}()
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	return st, err
}

// Exec executes a single command line. ok is false when the line produced
// no reply.
func (d *Driver) Exec(ctx context.Context, line string) (reply string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := fields[0], fields[1:]
	var err error
	switch cmd {
	case CmdAddStation:
		reply, err = d.addStation(args)
	case CmdRemoveStation:
		reply, err = d.removeStation(args)
	case CmdAddVehicle:
		reply, err = d.addVehicle(args)
	case CmdRemoveVehicle:
		reply, err = d.removeVehicle(args)
	case CmdPlanRoute:
		reply, err = d.planRoute(args)
	default:
		d.log.Warnf("unknown command %q", cmd)
		return "", false
	}
	if err != nil {
		d.log.Warnf("%s: %v", cmd, err)
		return "", false
	}
	if d.journal != nil {
		if jerr := d.journal.Record(ctx, line, cmd, reply); jerr != nil {
			d.log.Warnf("journal: %v", jerr)
		}
	}
	return reply, true
}

func (d *Driver) addStation(args []string) (string, error) {
	nums, err := ints(args, 2)
	if err != nil {
		return "", err
	}
	pos, n := nums[0], nums[1]
	if n < 0 || len(nums)-2 < n {
		return "", fmt.Errorf("%w: expected %d ranges, got %d", errMalformed, n, len(nums)-2)
	}
	if _, err := d.hw.AddStation(pos, nums[2:2+n]); err != nil {
		return ReplyNotAdded, nil
	}
	return ReplyAdded, nil
}

func (d *Driver) removeStation(args []string) (string, error) {
	nums, err := ints(args, 1)
	if err != nil {
		return "", err
	}
	if err := d.hw.RemoveStation(nums[0]); err != nil {
		return ReplyNotRemoved, nil
	}
	return ReplyRemoved, nil
}

func (d *Driver) addVehicle(args []string) (string, error) {
	nums, err := ints(args, 2)
	if err != nil {
		return "", err
	}
	if err := d.hw.AddVehicle(nums[0], nums[1]); err != nil {
		return ReplyNotAdded, nil
	}
	return ReplyAdded, nil
}

func (d *Driver) removeVehicle(args []string) (string, error) {
	nums, err := ints(args, 2)
	if err != nil {
		return "", err
	}
	if err := d.hw.RemoveVehicle(nums[0], nums[1]); err != nil {
		return ReplyNotScrapped, nil
	}
	return ReplyScrapped, nil
}

func (d *Driver) planRoute(args []string) (string, error) {
	nums, err := ints(args, 2)
	if err != nil {
		return "", err
	}
	stops, err := d.hw.PlanRoute(nums[0], nums[1])
	if err != nil {
		return ReplyNoRoute, nil
	}
	return FormatRoute(stops), nil
}

// FormatRoute renders stop positions separated by single spaces.
func FormatRoute(stops []int) string {
	var b strings.Builder
	for i, p := range stops {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}

// ints parses every argument as a 32-bit integer, requiring at least want
// of them.
func ints(args []string, want int) ([]int, error) {
	if len(args) < want {
		return nil, fmt.Errorf("%w: expected at least %d arguments, got %d", errMalformed, want, len(args))
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", errMalformed, i+1, err)
		}
		out[i] = int(v)
	}
	return out, nil
}
