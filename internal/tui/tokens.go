package tui

import (
	"strings"

	"github.com/sant0-9/firpredict/internal/prompts"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	switch {
	case strings.Contains(model, "gemini"):
		return 1000000
	case strings.Contains(model, "claude"):
		return 200000
	case strings.Contains(model, "gpt-4o"), strings.Contains(model, "gpt-4.1"):
		return 128000
	case strings.Contains(model, "llama-3"), strings.Contains(model, "llama3"):
		return 128000
	case strings.Contains(model, "mixtral"):
		return 32000
	default:
		return 8000
	}
}

// caseUsage estimates the prompt size for a case against the model's window
func caseUsage(caseText, model string) (tokens, limit int) {
	return estimateTokens(prompts.BuildSectionPrompt(caseText)), getContextLimit(model)
}
