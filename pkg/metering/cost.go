package metering

import (
	"context"
	"fmt"
	"time"
)

// costCounterTTL is the rolling retention window for the daily cost
// counter, per §4.4 step 4 ("rolling 30-day retention").
const costCounterTTL = 30 * 24 * time.Hour

// microDollarsPerDollar converts the float64 USD cost gateway.Complete
// reports into an integer the shared store can atomically increment.
const microDollarsPerDollar = 1_000_000

// costStore is the subset of store.Store the cost tracker needs, kept
// narrow so tests can fake it without a full Store.
type costStore interface {
	IncrWindow(ctx context.Context, key string, delta int64, window time.Duration) (int64, error)
}

// CostTracker implements gateway.CostTracker: one atomic micro-dollar
// counter per (caller, day), each independently expiring after
// costCounterTTL from its first write.
type CostTracker struct {
	backing costStore
}

// NewCostTracker wraps a store.Store (or any costStore) to implement
// gateway.CostTracker.
func NewCostTracker(backing costStore) *CostTracker {
	return &CostTracker{backing: backing}
}

// RecordCost increments the caller's rolling-30-day micro-dollar counter.
func (c *CostTracker) RecordCost(ctx context.Context, callerID string, usd float64) error {
	key := fmt.Sprintf("cost:%s:day:%d", callerID, time.Now().Unix()/86400)
	microDollars := int64(usd * microDollarsPerDollar)
	_, err := c.backing.IncrWindow(ctx, key, microDollars, costCounterTTL)
	return err
}
