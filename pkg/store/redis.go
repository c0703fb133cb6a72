package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the production Store, backing every instance of the service
// from one shared cluster so the rate limiter's windows and the
// gateway's response cache are both consistent across replicas.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. prefix namespaces every key this
// store touches so unrelated callers can share one Redis instance.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *Redis) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Redis) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	return r.client.IncrBy(ctx, r.key(key), delta).Result()
}

// IncrWindow increments key by delta and, only on the increment that
// creates it (the resulting value equals delta), sets its expiry — a
// single round trip in the common case, an extra EXPIRE call only when
// the window key is new.
func (r *Redis) IncrWindow(ctx context.Context, key string, delta int64, window time.Duration) (int64, error) {
	full := r.key(key)
	n, err := r.client.IncrBy(ctx, full, delta).Result()
	if err != nil {
		return 0, err
	}
	if n == delta {
		if err := r.client.Expire(ctx, full, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
