package calccache_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcbot/internal/calccache"
)

func TestCache_GetSet(t *testing.T) {
	cache, err := calccache.Open("", time.Hour, nil)
	require.NoError(t, err)
	defer cache.Close()

	_, ok, err := cache.Get("2+3*4")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set("2+3*4", 14))
	require.NoError(t, cache.Set("ln(-1)", math.NaN()))
	require.NoError(t, cache.Set("1/0", math.Inf(1)))

	v, ok, err := cache.Get("2+3*4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 14.0, v)

	v, ok, err = cache.Get("ln(-1)")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))

	v, ok, err = cache.Get("1/0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, 1))

	require.NoError(t, cache.Set("2+3*4", 15))
	v, _, err = cache.Get("2+3*4")
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

func TestCache_TTL(t *testing.T) {
	ttl := time.Second
	cache, err := calccache.Open("", ttl, nil)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set("5!", 120))
	// Expiry has one second granularity.
	time.Sleep(2 * ttl)

	_, ok, err := cache.Get("5!")
	require.NoError(t, err)
	assert.False(t, ok, "entry has not expired")
}

func TestCache_OnDisk(t *testing.T) {
	dir := t.TempDir()

	cache, err := calccache.Open(dir, 0, nil)
	require.NoError(t, err)
	require.NoError(t, cache.Set("pi", math.Pi))
	require.NoError(t, cache.Close())

	cache, err = calccache.Open(dir, 0, nil)
	require.NoError(t, err)
	defer cache.Close()
	v, ok, err := cache.Get("pi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, math.Pi, v)
}
