package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c := New[string](15 * time.Minute)
	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMissingKey(t *testing.T) {
	c := New[int](time.Minute)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewWithClock[string](15*time.Minute, clock)

	c.Set("k", "v")
	now = now.Add(14 * time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry inside TTL")

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry past TTL")

	// expired entry was evicted, not just hidden
	c.mu.Lock()
	_, present := c.entries["k"]
	c.mu.Unlock()
	assert.False(t, present)
}

func TestOverwriteResetsClock(t *testing.T) {
	now := time.Now()
	c := NewWithClock[int](10*time.Minute, func() time.Time { return now })

	c.Set("k", 1)
	now = now.Add(9 * time.Minute)
	c.Set("k", 2)
	now = now.Add(9 * time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}
