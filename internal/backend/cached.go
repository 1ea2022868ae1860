package backend

import (
	"context"
	"time"

	"myspace/internal/cache"
	"myspace/internal/core"
	"myspace/internal/source"
)

// Cached memoises calendar and projects payloads. Day payloads change while
// a timer is running and always go to the wrapped reader. Failed reads are
// never stored.
type Cached struct {
	next     source.Reader
	calendar *cache.LRUCache[core.CalendarReport]
	projects *cache.LRUCache[core.ProjectsReport]
}

// NewCached wraps next with month caches of the given size and TTL
func NewCached(next source.Reader, size int, ttl time.Duration) *Cached {
	return &Cached{
		next:     next,
		calendar: cache.NewLRUCache[core.CalendarReport](size, ttl),
		projects: cache.NewLRUCache[core.ProjectsReport](size, ttl),
	}
}

// Register hands both caches to m for periodic expiry sweeps
func (c *Cached) Register(m *cache.Manager) {
	m.Register("calendar", c.calendar)
	m.Register("projects", c.projects)
}

// ReadDay passes through to the wrapped reader.
func (c *Cached) ReadDay(ctx context.Context, d core.Date) (core.DayReport, error) {
	return c.next.ReadDay(ctx, d)
}

// ReadCalendar serves the calendar payload from cache when fresh.
func (c *Cached) ReadCalendar(ctx context.Context, p core.Period) (core.CalendarReport, error) {
	return readThrough(ctx, c.calendar, p, c.next.ReadCalendar)
}

// ReadProjects serves the projects payload from cache when fresh.
func (c *Cached) ReadProjects(ctx context.Context, p core.Period) (core.ProjectsReport, error) {
	return readThrough(ctx, c.projects, p, c.next.ReadProjects)
}

// Stats reports counters for the calendar and projects caches.
func (c *Cached) Stats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"calendar": c.calendar.Stats(),
		"projects": c.projects.Stats(),
	}
}

func readThrough[T any](ctx context.Context, lru *cache.LRUCache[T], p core.Period, read func(context.Context, core.Period) (T, error)) (T, error) {
	key := p.String()
	if v, ok := lru.Get(key); ok {
		return v, nil
	}
	v, err := read(ctx, p)
	if err != nil {
		return v, err
	}
	lru.Set(key, v)
	return v, nil
}
