package llm

import (
	"sort"
	"strings"
)

// ModelCost is a model's price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call's tokens.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// modelCosts covers the models the providers resolve to by default and
// their common siblings. Prices from models.dev, February 2026.
var modelCosts = map[string]ModelCost{
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4.1":      {2, 8},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"gpt-5":        {1.25, 10},
	"o4-mini":      {1.1, 4.4},

	"claude-haiku-4-5":  {1, 5},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-sonnet-4-5": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4-5":   {5, 25},

	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},
}

// pricedPrefixes is modelCosts' keys, longest first, so that dated
// snapshots match their most specific family.
var pricedPrefixes = func() []string {
	keys := make([]string, 0, len(modelCosts))
	for k := range modelCosts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return keys
}()

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter vendor prefixes ("openai/gpt-4o-mini") and snapshot suffixes
// ("claude-haiku-4-5-20251001", "gemini-2.0-flash-exp") are ignored.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(modelID)
	if _, rest, ok := strings.Cut(id, "/"); ok {
		id = rest
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	for _, prefix := range pricedPrefixes {
		if strings.HasPrefix(id, prefix+"-") {
			c := modelCosts[prefix]
			return &c
		}
	}
	return nil
}
