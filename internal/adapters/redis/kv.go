package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Embedded starts an in-process Redis for development and returns a client
// bound to it. Data lives only as long as the process.
func Embedded() (*redis.Client, func(), error) {
	srv, err := miniredis.Run()
	if err != nil {
		return nil, nil, err
	}
	c := NewClient(srv.Addr(), "", 0)
	return c, func() { _ = c.Close(); srv.Close() }, nil
}

// KV is a plain string store used for sessions and the booking collection.
type KV struct{ c *redis.Client }

func NewKV(c *redis.Client) *KV { return &KV{c: c} }

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := k.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return k.c.Set(ctx, key, value, ttl).Err()
}

func (k *KV) Del(ctx context.Context, key string) error {
	return k.c.Del(ctx, key).Err()
}
