package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlannerClientInterface abstracts the generative-AI provider behind one
// call: prompt in, itinerary JSON out.
type PlannerClientInterface interface {
	GenerateItineraryJSON(ctx context.Context, prompt string) (string, error)
}

// NewPlannerClient Factory function to create either an OpenAI or Gemini
// planner client based on config
func NewPlannerClient(provider, apiKey, model string) (PlannerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlannerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiPlannerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported planner provider: %s", provider)
	}
}
