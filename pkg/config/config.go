// Package config defines the closed Config struct every deployment of the
// Generation Core loads once at startup, per SPEC_FULL's AMBIENT STACK
// section. It is parsed from YAML exactly as pkg/dungeon.Config is: read,
// unmarshal, Validate() before use — rejecting unknown/out-of-range values
// at load time rather than at the point of use.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/infogen/core/pkg/gateway"
	"github.com/infogen/core/pkg/measure"
	"github.com/infogen/core/pkg/metering"
)

// ModelRef names one provider+model pair, YAML-shaped for default-model-map.
type ModelRef struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// RateLimitCfg is the per-minute/per-day cap pair for one plan tier.
type RateLimitCfg struct {
	PerMinute int `yaml:"per_minute"`
	PerDay    int `yaml:"per_day"`
}

// PlanLimitCfg overrides metering.DefaultPlans' table for one tier.
type PlanLimitCfg struct {
	Tier                  string   `yaml:"tier"`
	GenerationsPerMonth   int      `yaml:"generations_per_month"`
	MaxEntitiesPerDiagram int      `yaml:"max_entities_per_diagram"`
	AllowedModelTiers     []string `yaml:"allowed_model_tiers"`
	AllowedOutputFormats  []string `yaml:"allowed_output_formats"`
	ArtifactTTLHours      int      `yaml:"artifact_ttl_hours"`
}

// Config is the closed set of options a deployment may set, per §6.
type Config struct {
	// DefaultModelMap is the ordered fallback chain per gateway tier
	// ("fast", "standard", "premium", "vision"), per §6's default-model-map.
	DefaultModelMap map[string][]ModelRef `yaml:"default_model_map"`

	// LLMCacheTTLSeconds is the response cache's entry lifetime in
	// seconds. It is parsed and validated here; nothing else in this
	// module reads it, and the gateway cache keeps its own TTL.
	LLMCacheTTLSeconds int `yaml:"llm_cache_ttl_seconds"`

	// ArtifactStorageURL names the object-store endpoint for generated
	// files. It is parsed here; nothing else in this module reads it.
	ArtifactStorageURL string `yaml:"artifact_storage_url"`

	// CostBudgetDailyUSD is the soft daily cost threshold. It is parsed and
	// validated here; nothing in this module compares spend against it or
	// logs when it is crossed.
	CostBudgetDailyUSD float64 `yaml:"cost_budget_daily_usd"`

	// RateLimitPerPlan holds the per-minute/day caps keyed by plan tier
	// name, per §6's rate-limit-per-plan.
	RateLimitPerPlan map[string]RateLimitCfg `yaml:"rate_limit_per_plan"`

	// PlanLimits overrides metering.DefaultPlans per plan tier, per §4.8.
	PlanLimits []PlanLimitCfg `yaml:"plan_limits"`

	// FontFallbackChain is the ordered family-role list, per §4.1. Defaults
	// to measure.DefaultFallbackChain when empty. It is parsed and validated
	// here; Measure does not read it and always uses DefaultFallbackChain.
	FontFallbackChain []string `yaml:"font_fallback_chain"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML configuration from data, useful for
// tests and programmatic config construction.
func LoadBytes(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if len(c.FontFallbackChain) == 0 {
		c.FontFallbackChain = append([]string(nil), measure.DefaultFallbackChain...)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &c, nil
}

var validTiers = map[string]gateway.Tier{
	"fast": gateway.FAST, "standard": gateway.STANDARD,
	"premium": gateway.PREMIUM, "vision": gateway.VISION,
}

var validFormats = map[string]metering.OutputFormat{
	"svg": metering.FormatSVG, "slide": metering.FormatSlide,
}

// Validate checks every field's constraints, returning the first failure.
func (c *Config) Validate() error {
	for tier, chain := range c.DefaultModelMap {
		if _, ok := validTiers[tier]; !ok {
			return fmt.Errorf("default_model_map: unknown tier %q", tier)
		}
		if len(chain) == 0 {
			return fmt.Errorf("default_model_map[%s]: chain must not be empty", tier)
		}
		for i, ref := range chain {
			if ref.Provider == "" || ref.Model == "" {
				return fmt.Errorf("default_model_map[%s][%d]: provider and model are required", tier, i)
			}
		}
	}

	if c.LLMCacheTTLSeconds < 0 {
		return fmt.Errorf("llm_cache_ttl_seconds must be >= 0, got %d", c.LLMCacheTTLSeconds)
	}
	if c.CostBudgetDailyUSD < 0 {
		return fmt.Errorf("cost_budget_daily_usd must be >= 0, got %f", c.CostBudgetDailyUSD)
	}

	for tier, rl := range c.RateLimitPerPlan {
		if rl.PerMinute < -1 || rl.PerDay < -1 {
			return fmt.Errorf("rate_limit_per_plan[%s]: limits must be >= -1 (unlimited)", tier)
		}
	}

	for i, pl := range c.PlanLimits {
		if pl.Tier == "" {
			return fmt.Errorf("plan_limits[%d]: tier is required", i)
		}
		if pl.MaxEntitiesPerDiagram < 1 {
			return fmt.Errorf("plan_limits[%d]: max_entities_per_diagram must be >= 1", i)
		}
		for _, t := range pl.AllowedModelTiers {
			if _, ok := validTiers[t]; !ok {
				return fmt.Errorf("plan_limits[%d]: unknown model tier %q", i, t)
			}
		}
		for _, f := range pl.AllowedOutputFormats {
			if _, ok := validFormats[f]; !ok {
				return fmt.Errorf("plan_limits[%d]: unknown output format %q", i, f)
			}
		}
	}

	for i, family := range c.FontFallbackChain {
		if family == "" {
			return fmt.Errorf("font_fallback_chain[%d]: family name must not be empty", i)
		}
	}

	return nil
}

// GatewayChains converts DefaultModelMap into the shape gateway.Gateway's
// ChainsByTier field expects.
func (c *Config) GatewayChains() map[gateway.Tier][]gateway.ModelRef {
	out := make(map[gateway.Tier][]gateway.ModelRef, len(c.DefaultModelMap))
	for tier, chain := range c.DefaultModelMap {
		t := validTiers[tier]
		refs := make([]gateway.ModelRef, len(chain))
		for i, r := range chain {
			refs[i] = gateway.ModelRef{Provider: r.Provider, Model: r.Model}
		}
		out[t] = refs
	}
	return out
}
