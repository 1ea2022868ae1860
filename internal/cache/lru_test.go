package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	c.Set("b", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// "b" is now least recently used and goes first.
	c.Set("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())

	c.Set("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestLRUCacheExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, time.Minute).WithClock(clock.now)

	c.Set("2024-03", "calendar")
	clock.advance(30 * time.Second)
	_, ok := c.Get("2024-03")
	assert.True(t, ok)

	clock.advance(31 * time.Second)
	_, ok = c.Get("2024-03")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCacheCleanExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](10, time.Minute).WithClock(clock.now)

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.advance(2 * time.Minute)
	c.Set("fresh", 3)

	assert.Equal(t, 2, c.CleanExpired())
	assert.Equal(t, 1, c.Size())
}

func TestLRUCacheZeroSizeDisables(t *testing.T) {
	c := NewLRUCache[int](0, time.Minute)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCacheStats(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 1, s.Size)
}

func TestManagerCleanNowAndStop(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	a := NewLRUCache[int](4, time.Second).WithClock(clock.now)
	b := NewLRUCache[string](4, time.Second).WithClock(clock.now)
	a.Set("x", 1)
	b.Set("y", "z")

	m := NewManager(nil)
	m.Register("a", a)
	m.Register("b", b)
	m.StartCleanup(time.Hour)

	clock.advance(2 * time.Second)
	assert.Equal(t, 2, m.CleanNow())

	m.Stop()
	m.Stop()
}
