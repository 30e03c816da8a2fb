package id

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Generator hands out transaction IDs. IDs are millisecond timestamps, bumped
// past the last issued or observed ID so they stay unique and increasing.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewGenerator creates a Generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock creates a Generator with a custom clock.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns a new ID greater than every ID issued or observed so far.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := g.now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return next
}

// Observe records an existing ID (seeded or loaded from storage) so it is never reissued.
func (g *Generator) Observe(ids ...int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, v := range ids {
		if v > g.last {
			g.last = v
		}
	}
}

// Format returns the decimal string form of an ID.
func Format(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Parse parses a transaction ID from a CLI argument or CSV cell.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction ID %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid transaction ID %q: must be positive", s)
	}
	return v, nil
}

// ParseAll parses a list of IDs, stopping at the first bad one.
func ParseAll(ss []string) ([]int64, error) {
	ids := make([]int64, 0, len(ss))
	for _, s := range ss {
		v, err := Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, nil
}
