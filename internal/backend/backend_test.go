package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myspace/internal/cache"
	"myspace/internal/config"
	"myspace/internal/core"
	"myspace/internal/source/fixture"
)

type countingReader struct {
	days, calendars, projects atomic.Int32
	fail                      atomic.Bool
}

var errBoom = errors.New("boom")

func (r *countingReader) ReadDay(ctx context.Context, d core.Date) (core.DayReport, error) {
	r.days.Add(1)
	if r.fail.Load() {
		return core.DayReport{}, errBoom
	}
	return core.DayReport{Hours: float64(r.days.Load())}, nil
}

func (r *countingReader) ReadCalendar(ctx context.Context, p core.Period) (core.CalendarReport, error) {
	r.calendars.Add(1)
	if r.fail.Load() {
		return core.CalendarReport{}, errBoom
	}
	return core.CalendarReport{Year: p.Year, Month: int(p.Month)}, nil
}

func (r *countingReader) ReadProjects(ctx context.Context, p core.Period) (core.ProjectsReport, error) {
	r.projects.Add(1)
	if r.fail.Load() {
		return core.ProjectsReport{}, errBoom
	}
	return core.ProjectsReport{Year: p.Year, Month: int(p.Month)}, nil
}

func TestCachedNeverCachesDays(t *testing.T) {
	next := &countingReader{}
	c := NewCached(next, 8, time.Minute)
	d := core.Date{Year: 2024, Month: time.March, Day: 15}

	first, err := c.ReadDay(context.Background(), d)
	require.NoError(t, err)
	second, err := c.ReadDay(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, int32(2), next.days.Load())
	assert.NotEqual(t, first.Hours, second.Hours)
}

func TestCachedMonthPayloads(t *testing.T) {
	next := &countingReader{}
	c := NewCached(next, 8, time.Minute)
	ctx := context.Background()
	p := core.Period{Year: 2024, Month: time.March}

	for i := 0; i < 3; i++ {
		_, err := c.ReadCalendar(ctx, p)
		require.NoError(t, err)
		_, err = c.ReadProjects(ctx, p)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), next.calendars.Load())
	assert.Equal(t, int32(1), next.projects.Load())

	_, err := c.ReadCalendar(ctx, p.Next())
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calendars.Load())

	stats := c.Stats()
	assert.Equal(t, int64(2), stats["calendar"].Hits)
	assert.Equal(t, 2, stats["calendar"].Size)
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &countingReader{}
	next.fail.Store(true)
	c := NewCached(next, 8, time.Minute)
	ctx := context.Background()
	p := core.Period{Year: 2024, Month: time.March}

	_, err := c.ReadProjects(ctx, p)
	assert.ErrorIs(t, err, errBoom)

	next.fail.Store(false)
	got, err := c.ReadProjects(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, int32(2), next.projects.Load())
}

func TestCachedRegistersWithManager(t *testing.T) {
	m := cache.NewManager(nil)
	defer m.Stop()

	c := NewCached(&countingReader{}, 8, time.Nanosecond)
	c.Register(m)

	_, err := c.ReadCalendar(context.Background(), core.Period{Year: 2024, Month: time.March})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	assert.Equal(t, 1, m.CleanNow())
}

func TestBackendTypeIsValid(t *testing.T) {
	tests := []struct {
		in   BackendType
		want bool
	}{
		{APIBackend, true},
		{FixtureBackend, true},
		{"sqlite", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.IsValid(), tt.in)
	}
	assert.ElementsMatch(t, []BackendType{APIBackend, FixtureBackend}, GetBackendTypes())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"api ok", Config{Type: APIBackend, APIURL: "http://localhost:8080", APITimeout: time.Second}, false},
		{"api missing url", Config{Type: APIBackend, APITimeout: time.Second}, true},
		{"api zero timeout", Config{Type: APIBackend, APIURL: "http://x"}, true},
		{"fixture ok", Config{Type: FixtureBackend}, false},
		{"cache without ttl", Config{Type: FixtureBackend, CacheSize: 4}, true},
		{"unknown", Config{Type: "nope"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	got, err := FromAppConfig(&config.Config{
		DataBackend: "api",
		APIURL:      "http://localhost:8080",
		APITimeout:  10 * time.Second,
		FixtureDir:  "./data",
		CacheSize:   64,
		CacheTTL:    time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, APIBackend, got.Type)
	assert.Equal(t, "http://localhost:8080", got.APIURL)
	assert.Equal(t, 64, got.CacheSize)
}

func TestFactoryCreatesBackends(t *testing.T) {
	f := NewFactory(nil, nil)
	ctx := context.Background()

	res, err := f.CreateBackend(ctx, Config{Type: APIBackend, APIURL: "http://localhost:8080", APITimeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, res.Backend)

	res, err = f.CreateBackend(ctx, Config{Type: FixtureBackend, DataDirectory: t.TempDir()})
	require.NoError(t, err)
	_, ok := res.Backend.(*fixture.Store)
	assert.True(t, ok, "uncached fixture backend is the store itself")

	res, err = f.CreateBackend(ctx, Config{Type: FixtureBackend, CacheSize: 4, CacheTTL: time.Minute})
	require.NoError(t, err)
	_, ok = res.Backend.(*Cached)
	assert.True(t, ok, "cache size enables the caching wrapper")

	_, err = f.CreateBackend(ctx, Config{Type: APIBackend, APIURL: "ftp://x", APITimeout: time.Second})
	assert.Error(t, err)
}
