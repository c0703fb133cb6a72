package metering

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/gateway"
	"github.com/infogen/core/pkg/store"
)

func TestPlanCheckEntityCount(t *testing.T) {
	p := DefaultPlans[PlanFree]
	if err := p.CheckEntityCount(p.MaxEntitiesPerDiagram); err != nil {
		t.Errorf("at the cap should be allowed: %v", err)
	}
	err := p.CheckEntityCount(p.MaxEntitiesPerDiagram + 1)
	if apperr.KindOf(err) != apperr.PlanLimitExceeded {
		t.Errorf("expected PlanLimitExceeded, got %v", err)
	}
}

func TestPlanCheckModelTier(t *testing.T) {
	p := DefaultPlans[PlanFree]
	if err := p.CheckModelTier(gateway.FAST); err != nil {
		t.Errorf("free plan should allow FAST: %v", err)
	}
	err := p.CheckModelTier(gateway.PREMIUM)
	if apperr.KindOf(err) != apperr.PlanForbidsTier {
		t.Errorf("expected PlanForbidsTier, got %v", err)
	}
}

func TestPlanFilterOutputFormats(t *testing.T) {
	p := DefaultPlans[PlanFree]
	got := p.FilterOutputFormats([]OutputFormat{FormatSVG, FormatSlide})
	if len(got) != 1 || got[0] != FormatSVG {
		t.Errorf("expected only SVG for free plan, got %v", got)
	}
}

func TestRateLimiterBreachesPerMinute(t *testing.T) {
	rl := NewRateLimiter(store.NewMemory())
	plan := Plan{RateLimitPerMinute: 2, RateLimitPerDay: -1}
	now := time.Now()
	ctx := context.Background()

	if err := rl.Allow(ctx, "caller1", plan, now); err != nil {
		t.Fatalf("1st call should pass: %v", err)
	}
	if err := rl.Allow(ctx, "caller1", plan, now); err != nil {
		t.Fatalf("2nd call should pass: %v", err)
	}
	err := rl.Allow(ctx, "caller1", plan, now)
	if apperr.KindOf(err) != apperr.RateLimited {
		t.Errorf("3rd call should breach, got %v", err)
	}
}

func TestRateLimiterIndependentPerCaller(t *testing.T) {
	rl := NewRateLimiter(store.NewMemory())
	plan := Plan{RateLimitPerMinute: 1, RateLimitPerDay: -1}
	now := time.Now()
	ctx := context.Background()

	if err := rl.Allow(ctx, "a", plan, now); err != nil {
		t.Fatal(err)
	}
	if err := rl.Allow(ctx, "b", plan, now); err != nil {
		t.Errorf("different caller should not share the window: %v", err)
	}
}

func TestCostTrackerAccumulates(t *testing.T) {
	backing := store.NewMemory()
	ct := NewCostTracker(backing)
	ctx := context.Background()

	if err := ct.RecordCost(ctx, "caller1", 0.50); err != nil {
		t.Fatal(err)
	}
	if err := ct.RecordCost(ctx, "caller1", 0.25); err != nil {
		t.Fatal(err)
	}

	key := "cost:caller1:day:" + strconv.FormatInt(time.Now().Unix()/86400, 10)
	raw, ok, err := backing.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected counter to exist: ok=%v err=%v", ok, err)
	}
	_ = raw
	total, err := backing.IncrWindow(ctx, key, 0, time.Hour)
	if err != nil || total != 750000 {
		t.Errorf("expected 750000 micro-dollars accumulated, got %d (err %v)", total, err)
	}
}

func TestQuotaTrackerBreachesGenerationsPerMonth(t *testing.T) {
	qt := NewQuotaTracker(store.NewMemory())
	plan := Plan{Tier: PlanFree, GenerationsPerMonth: 2}
	now := time.Now()
	ctx := context.Background()

	if err := qt.Allow(ctx, "caller1", plan, now); err != nil {
		t.Fatalf("1st call should pass: %v", err)
	}
	if err := qt.Allow(ctx, "caller1", plan, now); err != nil {
		t.Fatalf("2nd call should pass: %v", err)
	}
	err := qt.Allow(ctx, "caller1", plan, now)
	if apperr.KindOf(err) != apperr.QuotaExceeded {
		t.Errorf("3rd call should breach, got %v", err)
	}
}

func TestQuotaTrackerUnlimitedWhenNegative(t *testing.T) {
	qt := NewQuotaTracker(store.NewMemory())
	plan := Plan{Tier: PlanEnterprise, GenerationsPerMonth: -1}
	ctx := context.Background()
	now := time.Now()
	for i := 0; i < 5; i++ {
		if err := qt.Allow(ctx, "caller1", plan, now); err != nil {
			t.Fatalf("call %d should pass under an unlimited plan: %v", i, err)
		}
	}
}

func TestMemoryRecordStoreIdempotentOnGenerationID(t *testing.T) {
	rs := NewMemoryRecordStore()
	ctx := context.Background()
	rec := GenerationRecord{GenerationID: "g1", Succeeded: true, CostUSD: 1.0}
	if err := rs.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.CostUSD = 2.0
	if err := rs.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, ok := rs.Get("g1")
	if !ok || got.CostUSD != 2.0 {
		t.Errorf("expected the second write to win, got %+v", got)
	}
}
