package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/dataset"
)

func testDataset(name string) *dataset.Dataset {
	return &dataset.Dataset{Name: name, Split: "train", Rows: 1}
}

func TestCache_PutAndGet(t *testing.T) {
	c := New(time.Hour)
	ds := testDataset("user/demo")

	c.Put("user/demo", "train", ds)

	got, ok := c.Get("user/demo", "train")
	require.True(t, ok)
	assert.Same(t, ds, got)

	_, ok = c.Get("user/demo", "test")
	assert.False(t, ok, "split is part of the cache key")

	_, ok = c.Get("user/other", "train")
	assert.False(t, ok)
}

func TestCache_ExpiresStrictlyAfterTTL(t *testing.T) {
	c := New(time.Hour)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Put("user/demo", "train", testDataset("user/demo"))

	now = now.Add(59 * time.Minute)
	_, ok := c.Get("user/demo", "train")
	assert.True(t, ok, "entry is fresh before the TTL")

	now = now.Add(time.Hour)
	_, ok = c.Get("user/demo", "train")
	assert.False(t, ok, "entry expires after the TTL")
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on access")
}

func TestCache_PutRefreshesTTL(t *testing.T) {
	c := New(time.Hour)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Put("user/demo", "train", testDataset("user/demo"))
	now = now.Add(50 * time.Minute)
	c.Put("user/demo", "train", testDataset("user/demo"))
	now = now.Add(50 * time.Minute)

	_, ok := c.Get("user/demo", "train")
	assert.True(t, ok, "the second Put reset the clock")
}

func TestCache_Flush(t *testing.T) {
	c := New(time.Hour)
	c.Put("a", "train", testDataset("a"))
	c.Put("b", "train", testDataset("b"))
	assert.Equal(t, 2, c.Len())

	c.Flush()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a", "train")
	assert.False(t, ok)
}
