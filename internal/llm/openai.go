package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions API
type OpenAIProvider struct {
	name  string
	model string
	api   *jsonAPI
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newCompatProvider("openai", "https://api.openai.com/v1", apiKey, model)
}

func newCompatProvider(name, baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:  name,
		model: model,
		api:   newJSONAPI(name, baseURL, apiKey),
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

// Ping lists models, which every compatible server exposes
func (o *OpenAIProvider) Ping(ctx context.Context) error {
	err := o.api.call(ctx, http.MethodGet, "/models", nil, nil)
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key for %s", o.name)
	}
	return err
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := firstNonEmpty(req.Model, o.model)

	var resp openAIResponse
	err := o.api.call(ctx, http.MethodPost, "/chat/completions", openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", o.name)
	}

	return &CompletionResponse{
		Content:      resp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: resp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	result := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return result
}

// GroqProvider uses Groq's OpenAI-compatible endpoint
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqProvider{
		OpenAIProvider: newCompatProvider("groq", "https://api.groq.com/openai/v1", apiKey, model),
	}
}

type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "google/gemini-2.0-flash-001"
	}
	return &OpenRouterProvider{
		OpenAIProvider: newCompatProvider("openrouter", "https://openrouter.ai/api/v1", apiKey, model),
	}
}

// CustomProvider points the OpenAI client at a user-supplied base URL
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newCompatProvider("custom", baseURL, apiKey, model),
	}
}
