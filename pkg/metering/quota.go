package metering

import (
	"context"
	"fmt"
	"time"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/store"
)

// quotaWindow is the period generations-per-month is metered over. Counts
// fall into fixed 30-day buckets aligned to the Unix epoch rather than
// calendar months, which keeps the bucket key (and therefore the backing
// store's expiry) a pure function of the current time, with no
// calendar-arithmetic edge cases.
const quotaWindow = 30 * 24 * time.Hour

// QuotaTracker enforces each plan's generations-per-month cap, per §4.9
// step 2. It shares the same store.Store capability as RateLimiter and
// CostTracker, under its own keys, separate from the rate limiter's
// windows.
type QuotaTracker struct {
	backing store.Store
}

// NewQuotaTracker wraps a store.Store.
func NewQuotaTracker(backing store.Store) *QuotaTracker {
	return &QuotaTracker{backing: backing}
}

// Allow increments the caller's generation count for the current 30-day
// bucket and
// returns QuotaExceeded if plan.GenerationsPerMonth (when not -1) is
// breached.
func (q *QuotaTracker) Allow(ctx context.Context, callerID string, plan Plan, now time.Time) error {
	if plan.GenerationsPerMonth < 0 {
		return nil
	}
	key := fmt.Sprintf("quota:%s:month:%d", callerID, now.Unix()/int64(quotaWindow.Seconds()))
	count, err := q.backing.IncrWindow(ctx, key, 1, quotaWindow)
	if err != nil {
		return apperr.New("metering", apperr.InternalError, err)
	}
	if count > int64(plan.GenerationsPerMonth) {
		return apperr.Newf("metering", apperr.QuotaExceeded,
			"caller %s exceeded %d generations/month on plan %s", callerID, plan.GenerationsPerMonth, plan.Tier)
	}
	return nil
}
