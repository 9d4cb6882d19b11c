package llm

import "sort"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// Models lists the aliases each provider accepts in its model setting,
// sorted. Any other value is passed to the provider verbatim.
func Models(provider string) []string {
	var m map[string]string
	switch provider {
	case ProviderOpenAI:
		m = openaiModels
	case ProviderAnthropic:
		m = anthropicModels
	case ProviderGemini:
		m = geminiModels
	default:
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Prices from models.dev, 2026-02-15. OpenRouter IDs carry a vendor prefix.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},

	"gpt-4.1":     {2, 8},
	"gpt-4o":      {2.5, 10},
	"gpt-4o-mini": {0.15, 0.6},

	"gemini-2.0-flash": {0.1, 0.4},
	"gemini-2.5-pro":   {1.25, 10},

	"openai/gpt-4o-mini":          {0.15, 0.6},
	"anthropic/claude-3.5-haiku":  {0.8, 4},
	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
