package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docscan/internal/config"
)

func TestNewRedisClientRequiresAddr(t *testing.T) {
	c, err := NewRedisClient(config.RedisConfig{})
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNilClientGuards(t *testing.T) {
	var c *Client
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, errNotInitialized)
	assert.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), errNotInitialized)
	assert.ErrorIs(t, c.Del(ctx, "k"), errNotInitialized)
	assert.ErrorIs(t, c.PingContext(ctx), errNotInitialized)
	assert.NoError(t, c.Close())
}

func TestDelWithoutKeys(t *testing.T) {
	c := &Client{}
	assert.ErrorIs(t, c.Del(context.Background()), errNotInitialized)
}
