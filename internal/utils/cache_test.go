package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCacheSetGet(t *testing.T) {
	c := NewSearchCache[[]string](10, time.Minute)

	c.Set("key", []string{"a", "b"})
	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSearchCacheTTL(t *testing.T) {
	c := NewSearchCache[int](10, 10*time.Millisecond)

	c.Set("key", 42)
	_, ok := c.Get("key")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("key")
	assert.False(t, ok)
	// 过期条目读取时被清除
	assert.Equal(t, 0, c.Len())
}

func TestSearchCacheLRUEviction(t *testing.T) {
	c := NewSearchCache[int](3, time.Minute)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("key-0")
	assert.False(t, ok)
	got, ok := c.Get("key-4")
	require.True(t, ok)
	assert.Equal(t, 4, got)
}

func TestSearchCacheDeleteAndClear(t *testing.T) {
	c := NewSearchCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
