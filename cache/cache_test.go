package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutURLStoresNothing(t *testing.T) {
	c, err := New("", time.Minute)
	require.NoError(t, err)
	require.IsType(t, Nop{}, c)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, PostKey(1), map[string]int{"id": 1}))
	var dest map[string]int
	found, err := c.Get(ctx, PostKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, PostKey(1)))
}

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New("http://not-redis", time.Minute)
	assert.Error(t, err)
}

func TestRedisReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	c := NewRedis(client, time.Minute)
	defer c.Close()

	var dest map[string]int
	found, err := c.Get(context.Background(), PostKey(2), &dest)
	assert.Error(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(context.Background()))
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, "post:42", PostKey(42))
}
