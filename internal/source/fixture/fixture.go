package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"myspace/internal/core"
)

// ErrNotFound is wrapped together with core.ErrFetchFailed when no payload
// exists for the requested key.
var ErrNotFound = errors.New("fixture not found")

// Store serves dashboard payloads from memory, optionally seeded from a
// directory of JSON files:
//
//	2024-03-15.json          day payload
//	2024-03-calendar.json    calendar payload
//	2024-03-projects.json    projects payload
type Store struct {
	mu       sync.Mutex
	dir      string
	days     map[core.Date]core.DayReport
	calendar map[core.Period]core.CalendarReport
	projects map[core.Period]core.ProjectsReport
}

func New() *Store {
	return &Store{
		days:     make(map[core.Date]core.DayReport),
		calendar: make(map[core.Period]core.CalendarReport),
		projects: make(map[core.Period]core.ProjectsReport),
	}
}

// NewFromDir returns a store that falls back to files under dir for keys
// not held in memory.
func NewFromDir(dir string) *Store {
	s := New()
	s.dir = dir
	return s
}

// PutDay stores a day payload.
func (s *Store) PutDay(d core.Date, r core.DayReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[d] = r
}

// PutCalendar stores a calendar payload.
func (s *Store) PutCalendar(p core.Period, r core.CalendarReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendar[p] = r
}

// PutProjects stores a projects payload.
func (s *Store) PutProjects(p core.Period, r core.ProjectsReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p] = r
}

// ReadDay returns the stored day payload.
func (s *Store) ReadDay(ctx context.Context, d core.Date) (core.DayReport, error) {
	if err := ctx.Err(); err != nil {
		return core.DayReport{}, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	s.mu.Lock()
	r, ok := s.days[d]
	s.mu.Unlock()
	if ok {
		return r, nil
	}
	return readFile[core.DayReport](s.dir, d.String()+".json")
}

// ReadCalendar returns the stored calendar payload.
func (s *Store) ReadCalendar(ctx context.Context, p core.Period) (core.CalendarReport, error) {
	if err := ctx.Err(); err != nil {
		return core.CalendarReport{}, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	s.mu.Lock()
	r, ok := s.calendar[p]
	s.mu.Unlock()
	if ok {
		return r, nil
	}
	return readFile[core.CalendarReport](s.dir, p.String()+"-calendar.json")
}

// ReadProjects returns the stored projects payload.
func (s *Store) ReadProjects(ctx context.Context, p core.Period) (core.ProjectsReport, error) {
	if err := ctx.Err(); err != nil {
		return core.ProjectsReport{}, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	s.mu.Lock()
	r, ok := s.projects[p]
	s.mu.Unlock()
	if ok {
		return r, nil
	}
	return readFile[core.ProjectsReport](s.dir, p.String()+"-projects.json")
}

func readFile[T any](dir, name string) (T, error) {
	var out T
	if dir == "" {
		return out, fmt.Errorf("%w: %w: %s", core.ErrFetchFailed, ErrNotFound, name)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return out, fmt.Errorf("%w: %w: %s", core.ErrFetchFailed, ErrNotFound, name)
	}
	if err != nil {
		return out, fmt.Errorf("%w: reading %s: %w", core.ErrFetchFailed, name, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("%w: decoding %s: %w", core.ErrFetchFailed, name, err)
	}
	return out, nil
}
