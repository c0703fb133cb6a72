package metering

import (
	"context"
	"fmt"
	"time"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/store"
)

// RateLimiter enforces the per-minute and per-day caps a Plan names, per
// §4.8. Each cap is counted in a fixed window aligned to the Unix epoch
// (one bucket per calendar minute and per UTC day); the windows do not
// slide, so a burst straddling a bucket boundary can reach up to twice a
// cap. It is backed by the shared store.Store capability
// so its windows live in the same Redis keyspace as the gateway's cache
// and the cost counters below, selected at the composition root.
type RateLimiter struct {
	backing store.Store
}

// NewRateLimiter wraps a store.Store (store.NewMemory() for tests, a
// store.Redis for production).
func NewRateLimiter(backing store.Store) *RateLimiter {
	return &RateLimiter{backing: backing}
}

// Allow increments the caller's per-minute window and returns RateLimited
// if that cap (when not -1) is breached; only otherwise does it increment
// the per-day window and check that cap, per §4.8's
// "classification decisions are made before the gateway call" (§4.9 step 1).
func (r *RateLimiter) Allow(ctx context.Context, callerID string, plan Plan, now time.Time) error {
	minuteKey := fmt.Sprintf("ratelimit:%s:minute:%d", callerID, now.Unix()/60)
	dayKey := fmt.Sprintf("ratelimit:%s:day:%d", callerID, now.Unix()/86400)

	minuteCount, err := r.backing.IncrWindow(ctx, minuteKey, 1, time.Minute)
	if err != nil {
		return apperr.New("metering", apperr.InternalError, err)
	}
	if plan.RateLimitPerMinute >= 0 && minuteCount > int64(plan.RateLimitPerMinute) {
		return apperr.Newf("metering", apperr.RateLimited,
			"caller %s exceeded %d requests/minute", callerID, plan.RateLimitPerMinute)
	}

	dayCount, err := r.backing.IncrWindow(ctx, dayKey, 1, 24*time.Hour)
	if err != nil {
		return apperr.New("metering", apperr.InternalError, err)
	}
	if plan.RateLimitPerDay >= 0 && dayCount > int64(plan.RateLimitPerDay) {
		return apperr.Newf("metering", apperr.RateLimited,
			"caller %s exceeded %d requests/day", callerID, plan.RateLimitPerDay)
	}

	return nil
}
