// Package export writes station snapshots as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/highway/core/station"
)

// WriteJSON writes the snapshot to w as a JSON array.
func WriteJSON(w io.Writer, snaps []station.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if snaps == nil {
		snaps = []station.Snapshot{}
	}
	return enc.Encode(snaps)
}

// WriteCSV writes one row per station. Vehicle ranges are joined by spaces.
func WriteCSV(w io.Writer, snaps []station.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "best_range", "vehicles"}); err != nil {
		return err
	}
	for _, s := range snaps {
		ranges := make([]string, len(s.Vehicles))
		for i, r := range s.Vehicles {
			ranges[i] = strconv.Itoa(r)
		}
		rec := []string{
			strconv.Itoa(s.Position),
			strconv.Itoa(s.BestRange),
			strings.Join(ranges, " "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the snapshot to path, choosing the format from the
// extension.
func WriteFile(path string, snaps []station.Snapshot) (err error) {
	var write func(io.Writer, []station.Snapshot) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		write = WriteJSON
	case ".csv":
		write = WriteCSV
	default:
		return fmt.Errorf("unsupported snapshot format: %s", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, snaps)
}
