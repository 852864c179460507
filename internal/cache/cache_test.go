package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNilClient(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	v, err := c.Version(ctx, "user:1")
	assert.NoError(t, err)
	assert.Zero(t, v)
	stored, err := c.SetIfVersion(ctx, "user:1", []byte("{}"), time.Minute, 0)
	assert.NoError(t, err)
	assert.False(t, stored)
	assert.NoError(t, c.Invalidate(ctx, "user:1", "user:2"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedis(t *testing.T) {
	// Nothing listens on port 1.
	c := New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stored, err := c.SetIfVersion(ctx, "user:1", []byte("{}"), time.Minute, 0)
	assert.Error(t, err)
	assert.False(t, stored)
	data, err := c.Get(ctx, "user:1")
	assert.Error(t, err)
	assert.Nil(t, data)
	_, err = c.Version(ctx, "user:1")
	assert.Error(t, err)
	assert.Error(t, c.Invalidate(ctx, "user:1"))
	assert.Error(t, c.Ping(ctx))
}

func TestGetMissing(t *testing.T) {
	c, _ := newTestClient(t)

	data, err := c.Get(context.Background(), "user:404")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSetIfVersion(t *testing.T) {
	tests := []struct {
		name        string
		invalidated int
		version     int64
		wantStored  bool
	}{
		{name: "fresh key at version zero", version: 0, wantStored: true},
		{name: "matching version after invalidation", invalidated: 2, version: 2, wantStored: true},
		{name: "stale version", invalidated: 1, version: 0, wantStored: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := newTestClient(t)
			ctx := context.Background()
			for i := 0; i < tt.invalidated; i++ {
				require.NoError(t, c.Invalidate(ctx, "user:1"))
			}

			stored, err := c.SetIfVersion(ctx, "user:1", []byte(`{"id":1}`), time.Minute, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStored, stored)

			data, err := c.Get(ctx, "user:1")
			require.NoError(t, err)
			if tt.wantStored {
				assert.Equal(t, `{"id":1}`, string(data))
				assert.Equal(t, time.Minute, mr.TTL("user:1"))
			} else {
				assert.Nil(t, data)
			}
		})
	}
}

func TestInvalidate(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:1", "a"))
	require.NoError(t, mr.Set("user:2", "b"))
	require.NoError(t, mr.Set("user:3", "c"))

	require.NoError(t, c.Invalidate(ctx, "user:1", "user:2"))

	assert.False(t, mr.Exists("user:1"))
	assert.False(t, mr.Exists("user:2"))
	assert.True(t, mr.Exists("user:3"))

	v, err := c.Version(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	v, err = c.Version(ctx, "user:3")
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.Equal(t, versionTTL, mr.TTL("user:1"+versionSuffix))

	require.NoError(t, c.Invalidate(ctx))
}
