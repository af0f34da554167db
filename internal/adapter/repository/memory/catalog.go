// Package memory is an in-process catalog. Each performance has its own lock,
// so decrements on different performances never contend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

type entry struct {
	mu   sync.Mutex
	perf domain.Performance
}

type Catalog struct {
	mu           sync.RWMutex
	performances map[int64]*entry
	nextID       int64
}

func NewCatalog(performances ...domain.Performance) (*Catalog, error) {
	c := &Catalog{performances: make(map[int64]*entry)}

	for _, p := range performances {
		if _, err := c.Add(p); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add stores p and returns its id. A zero id is assigned the next free one.
func (c *Catalog) Add(p domain.Performance) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p.ID == 0 {
		p.ID = c.nextID + 1
	}

	if _, exists := c.performances[p.ID]; exists {
		return 0, fmt.Errorf("performance %d already exists", p.ID)
	}

	c.nextID = max(c.nextID, p.ID)
	c.performances[p.ID] = &entry{perf: p}

	return p.ID, nil
}

func (c *Catalog) FindAll(ctx context.Context) ([]domain.Performance, error) {
	return c.filter(func(domain.Performance) bool { return true }), nil
}

func (c *Catalog) FindByTitle(ctx context.Context, title string) ([]domain.Performance, error) {
	needle := strings.ToLower(strings.TrimSpace(title))

	return c.filter(func(p domain.Performance) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	}), nil
}

func (c *Catalog) FindByDate(ctx context.Context, date time.Time) ([]domain.Performance, error) {
	y, m, d := date.Date()

	return c.filter(func(p domain.Performance) bool {
		py, pm, pd := p.StartDateTime.UTC().Date()
		return py == y && pm == m && pd == d
	}), nil
}

func (c *Catalog) FindByID(ctx context.Context, performanceID int64) (*domain.Performance, error) {
	e, err := c.get(performanceID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.perf

	return &p, nil
}

func (c *Catalog) DecrementSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	if circle < 0 || stall < 0 {
		return nil, fmt.Errorf("%w: negative decrement", domain.ErrInvalidSeatCount)
	}

	e, err := c.get(performanceID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.perf.CircleSeats < circle || e.perf.StallSeats < stall {
		return nil, fmt.Errorf("%w: performance %d has %d circle and %d stall seats",
			domain.ErrInsufficientSeats, performanceID, e.perf.CircleSeats, e.perf.StallSeats)
	}

	e.perf.CircleSeats -= circle
	e.perf.StallSeats -= stall
	p := e.perf

	return &p, nil
}

func (c *Catalog) RestoreSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	if circle < 0 || stall < 0 {
		return nil, fmt.Errorf("%w: negative restore", domain.ErrInvalidSeatCount)
	}

	e, err := c.get(performanceID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.perf.CircleSeats+circle > domain.MaxCircleSeats || e.perf.StallSeats+stall > domain.MaxStallSeats {
		return nil, fmt.Errorf("%w: restoring %d circle and %d stall seats to performance %d exceeds capacity",
			domain.ErrInvalidSeatCount, circle, stall, performanceID)
	}

	e.perf.CircleSeats += circle
	e.perf.StallSeats += stall
	p := e.perf

	return &p, nil
}

func (c *Catalog) get(performanceID int64) (*entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.performances[performanceID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrPerformanceNotFound, performanceID)
	}

	return e, nil
}

// filter returns matching snapshots ordered by start time, then id.
func (c *Catalog) filter(match func(domain.Performance) bool) []domain.Performance {
	c.mu.RLock()
	entries := make([]*entry, 0, len(c.performances))
	for _, e := range c.performances {
		entries = append(entries, e)
	}
	c.mu.RUnlock()

	var out []domain.Performance
	for _, e := range entries {
		e.mu.Lock()
		p := e.perf
		e.mu.Unlock()

		if match(p) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDateTime.Equal(out[j].StartDateTime) {
			return out[i].StartDateTime.Before(out[j].StartDateTime)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
