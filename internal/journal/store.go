// Package journal keeps an append-only audit trail of driver commands and
// the replies they produced. The journal is never replayed into the index.
package journal

import (
	"context"
	"fmt"
	"time"
)

// Record is one command line processed by the driver.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Seq       int       `json:"seq"`
	Line      string    `json:"line"`
	Command   string    `json:"command"`
	Reply     string    `json:"reply"`
}

// Query filters records. Zero fields match everything.
type Query struct {
	Start   time.Time
	End     time.Time
	Command string
	Session string
}

func (q Query) match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Command != "" && r.Command != q.Command {
		return false
	}
	if q.Session != "" && r.Session != q.Session {
		return false
	}
	return true
}

// Store persists journal records.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config selects and configures the journal backend.
type Config struct {
	// Backend is "jsonl", "sqlite" or "none".
	Backend string `json:"backend" validate:"oneof=jsonl sqlite none"`
	Path    string `json:"path" validate:"required_unless=Backend none"`
	// MaxSizeMB enables rotation of the jsonl backend when positive.
	MaxSizeMB  int `json:"max_size_mb" validate:"gte=0"`
	MaxBackups int `json:"max_backups" validate:"gte=0"`
	MaxAgeDays int `json:"max_age_days" validate:"gte=0"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "none"
	}
	if c.Path == "" {
		switch c.Backend {
		case "jsonl":
			c.Path = "highway-journal.jsonl"
		case "sqlite":
			c.Path = "highway-journal.db"
		}
	}
}

// Open creates the store described by cfg. The "none" backend returns a nil
// Store and no error.
func Open(cfg Config) (Store, error) {
	cfg.SetDefaults()
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "jsonl":
		if cfg.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown journal backend %s", cfg.Backend)
	}
}
