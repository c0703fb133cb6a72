// Package store defines the one shared key-value capability the LLM
// gateway's response cache and the metering package's rate limiter and
// cost counters are both built on, per §4.8: a single interface with an
// in-memory implementation (tests, single-instance deployments) and a
// Redis-backed implementation (production), selected at the composition
// root rather than wired into either caller.
package store

import (
	"context"
	"time"
)

// Store is the shared capability: byte-slice get/set with TTL, plus the
// two counter primitives the rate limiter and cost tracker need.
type Store interface {
	// Get returns the stored value, or ok=false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// SetWithTTL stores value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Incr atomically increments key by delta and returns the new value.
	Incr(ctx context.Context, key string, delta int64) (int64, error)

	// IncrWindow atomically increments key by delta, sets its expiry to
	// window the first time the key is created, and returns the new
	// value. Used by the fixed-window rate limiter (one key per
	// caller/minute or caller/day bucket), the 30-day quota counter, and
	// the cost counter (one key per caller/day bucket), per §4.4 step 4
	// and §4.8.
	IncrWindow(ctx context.Context, key string, delta int64, window time.Duration) (int64, error)
}
