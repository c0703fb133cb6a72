package gateway

// ModelRef names one provider-model pair in a tier's fallback chain.
type ModelRef struct {
	Provider string
	Model    string
}

// Chains is the default ordered fallback chain of provider-model
// identifiers per tier, per §4.4. A deployment may not have credentials
// for every provider named here; Complete simply skips entries whose
// provider was never registered.
var Chains = map[Tier][]ModelRef{
	FAST: {
		{Provider: "gemini", Model: "gemini-2.0-flash"},
		{Provider: "openai", Model: "gpt-4o-mini"},
		{Provider: "anthropic", Model: "claude-3-5-haiku-20241022"},
	},
	STANDARD: {
		{Provider: "anthropic", Model: "claude-3-5-sonnet-20241022"},
		{Provider: "openai", Model: "gpt-4o"},
		{Provider: "gemini", Model: "gemini-1.5-pro"},
	},
	PREMIUM: {
		{Provider: "anthropic", Model: "claude-opus-4-5"},
		{Provider: "openai", Model: "gpt-4.1"},
		{Provider: "gemini", Model: "gemini-2.5-pro"},
	},
	VISION: {
		{Provider: "gemini", Model: "gemini-2.0-flash"},
		{Provider: "openai", Model: "gpt-4o"},
		{Provider: "anthropic", Model: "claude-3-5-sonnet-20241022"},
	},
}

// CostPerMillionTokens is the provider's posted per-token rate table,
// input and output priced separately, in USD per one million tokens, per
// §4.4 step 4. Rates absent here cost 0 and should be filled in from the
// provider's published pricing before the gateway goes live with them.
var CostPerMillionTokens = map[string]struct{ Input, Output float64 }{
	"gemini-2.0-flash":           {Input: 0.10, Output: 0.40},
	"gemini-1.5-pro":             {Input: 1.25, Output: 5.00},
	"gemini-2.5-pro":             {Input: 1.25, Output: 10.00},
	"gpt-4o-mini":                {Input: 0.15, Output: 0.60},
	"gpt-4o":                     {Input: 2.50, Output: 10.00},
	"gpt-4.1":                    {Input: 2.00, Output: 8.00},
	"claude-3-5-haiku-20241022":  {Input: 0.80, Output: 4.00},
	"claude-3-5-sonnet-20241022": {Input: 3.00, Output: 15.00},
	"claude-opus-4-5":            {Input: 15.00, Output: 75.00},
}

// CostUSD computes the dollar cost of a completion from the model's
// posted rate table.
func CostUSD(model string, inputTokens, outputTokens int) float64 {
	rate, ok := CostPerMillionTokens[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000*rate.Input + float64(outputTokens)/1_000_000*rate.Output
}
