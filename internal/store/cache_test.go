package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheFreshHit(t *testing.T) {
	s, _ := newTestStore(t)
	c := NewCache(s, time.Hour)

	var miss []string
	require.False(t, c.Get("dataset", &miss))

	c.Put("dataset", []string{"a", "b"})
	s.Flush()

	var hit []string
	require.True(t, c.Get("dataset", &hit))
	assert.Equal(t, []string{"a", "b"}, hit)
}

func TestCacheExpiry(t *testing.T) {
	s, _ := newTestStore(t)
	c := NewCache(s, time.Hour)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("dataset", []string{"a"})
	s.Flush()

	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	var fresh []string
	assert.True(t, c.Get("dataset", &fresh))

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	var stale []string
	assert.False(t, c.Get("dataset", &stale), "entries past validity read as absent")
}

func TestCacheCorruptPayload(t *testing.T) {
	s, _ := newTestStore(t)
	c := NewCache(s, time.Hour)

	c.Put("dataset", []string{"a"})
	s.Flush()

	// Payload shape no longer matches the destination type
	var wrong map[string]int
	assert.False(t, c.Get("dataset", &wrong))
}
