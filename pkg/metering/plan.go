// Package metering enforces plan policy and rate limits, and records the
// outcome of every generation, per §4.8.
package metering

import (
	"github.com/infogen/core/pkg/apperr"
	"github.com/infogen/core/pkg/gateway"
)

// PlanTier is the closed set of subscription tiers, per §4.8.
type PlanTier string

const (
	PlanFree       PlanTier = "free"
	PlanPro        PlanTier = "pro"
	PlanBusiness   PlanTier = "business"
	PlanEnterprise PlanTier = "enterprise"
)

// OutputFormat is a renderer target a plan may or may not permit.
type OutputFormat string

const (
	FormatSlide OutputFormat = "slide"
	FormatSVG   OutputFormat = "svg"
)

// Plan is one tier's recognized options, per §4.8's table. A value of -1
// for GenerationsPerMonth disables the cap.
type Plan struct {
	Tier                 PlanTier
	GenerationsPerMonth   int
	MaxEntitiesPerDiagram int
	AllowedModelTiers     []gateway.Tier
	AllowedOutputFormats  []OutputFormat
	ArtifactTTLHours      int

	RateLimitPerMinute int
	RateLimitPerDay    int
}

// DefaultPlans is the built-in plan table; deployments may override it
// via the plan-limits configuration option (§6).
var DefaultPlans = map[PlanTier]Plan{
	PlanFree: {
		Tier: PlanFree, GenerationsPerMonth: 10, MaxEntitiesPerDiagram: 6,
		AllowedModelTiers:    []gateway.Tier{gateway.FAST},
		AllowedOutputFormats: []OutputFormat{FormatSVG},
		ArtifactTTLHours:     24,
		RateLimitPerMinute:   2, RateLimitPerDay: 10,
	},
	PlanPro: {
		Tier: PlanPro, GenerationsPerMonth: 200, MaxEntitiesPerDiagram: 12,
		AllowedModelTiers:    []gateway.Tier{gateway.FAST, gateway.STANDARD},
		AllowedOutputFormats: []OutputFormat{FormatSVG, FormatSlide},
		ArtifactTTLHours:     24 * 30,
		RateLimitPerMinute:   10, RateLimitPerDay: 200,
	},
	PlanBusiness: {
		Tier: PlanBusiness, GenerationsPerMonth: 2000, MaxEntitiesPerDiagram: 20,
		AllowedModelTiers:    []gateway.Tier{gateway.FAST, gateway.STANDARD, gateway.PREMIUM, gateway.VISION},
		AllowedOutputFormats: []OutputFormat{FormatSVG, FormatSlide},
		ArtifactTTLHours:     24 * 90,
		RateLimitPerMinute:   30, RateLimitPerDay: 2000,
	},
	PlanEnterprise: {
		Tier: PlanEnterprise, GenerationsPerMonth: -1, MaxEntitiesPerDiagram: 40,
		AllowedModelTiers:    []gateway.Tier{gateway.FAST, gateway.STANDARD, gateway.PREMIUM, gateway.VISION},
		AllowedOutputFormats: []OutputFormat{FormatSVG, FormatSlide},
		ArtifactTTLHours:     24 * 365,
		RateLimitPerMinute:   120, RateLimitPerDay: -1,
	},
}

// CheckEntityCount enforces max-entities-per-diagram, per §4.8 and §4.9
// step 5.
func (p Plan) CheckEntityCount(n int) error {
	if n > p.MaxEntitiesPerDiagram {
		return apperr.Newf("metering", apperr.PlanLimitExceeded,
			"brief has %d entities, plan %s allows at most %d", n, p.Tier, p.MaxEntitiesPerDiagram)
	}
	return nil
}

// CheckModelTier enforces allowed-model-tiers, per §4.8.
func (p Plan) CheckModelTier(t gateway.Tier) error {
	for _, allowed := range p.AllowedModelTiers {
		if allowed == t {
			return nil
		}
	}
	return apperr.Newf("metering", apperr.PlanForbidsTier,
		"plan %s does not allow gateway tier %s", p.Tier, t)
}

// FilterOutputFormats returns the subset of requested formats the plan
// allows, per §4.8's allowed-output-formats ("renderers for other formats
// are not invoked" — silently dropped, not an error).
func (p Plan) FilterOutputFormats(requested []OutputFormat) []OutputFormat {
	allowed := make(map[OutputFormat]bool, len(p.AllowedOutputFormats))
	for _, f := range p.AllowedOutputFormats {
		allowed[f] = true
	}
	var out []OutputFormat
	for _, f := range requested {
		if allowed[f] {
			out = append(out, f)
		}
	}
	return out
}
