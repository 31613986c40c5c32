package redisx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr(), "")
	defer rdb.Close()
	c := &Cache{Client: rdb}
	ctx := context.Background()

	_, ok := c.Get(ctx, KeyDoctorsCache)
	assert.False(t, ok)

	c.Set(ctx, KeyDoctorsCache, []byte(`{"doctors":[]}`), TTLListCache)
	b, ok := c.Get(ctx, KeyDoctorsCache)
	require.True(t, ok)
	assert.Equal(t, `{"doctors":[]}`, string(b))

	assert.True(t, mr.Exists(KeyDoctorsCache))

	mr.FastForward(TTLListCache + time.Second)
	_, ok = c.Get(ctx, KeyDoctorsCache)
	assert.False(t, ok)
}

func TestNilCacheIsMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.NotPanics(t, func() { c.Set(ctx, "k", []byte("v"), time.Minute) })
}

func TestUnreachableRedisIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr(), "")
	defer rdb.Close()
	c := &Cache{Client: rdb}
	mr.Close()

	_, ok := c.Get(context.Background(), KeyCategoriesCache)
	assert.False(t, ok)
}
