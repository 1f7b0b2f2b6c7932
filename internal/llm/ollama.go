package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaProvider runs predictions on a local Ollama server
type OllamaProvider struct {
	api   *jsonAPI
	model string
}

func NewOllamaProvider(host, model string) *OllamaProvider {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaProvider{api: newJSONAPI("Ollama", host, ""), model: model}
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Ping checks the server is up and the configured model has been pulled
func (o *OllamaProvider) Ping(ctx context.Context) error {
	var tags ollamaTags
	if err := o.api.call(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return err
	}
	if len(tags.Models) == 0 {
		// Fresh installs list nothing; let the first prediction report it
		return nil
	}
	for _, m := range tags.Models {
		if m.Name == o.model || strings.TrimSuffix(m.Name, ":latest") == o.model {
			return nil
		}
	}
	return fmt.Errorf("model %s is not available locally, run: ollama pull %s", o.model, o.model)
}

type ollamaChat struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaReply struct {
	Model           string        `json:"model"`
	Message         openAIMessage `json:"message"`
	DoneReason      string        `json:"done_reason"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}

func (o *OllamaProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	chat := ollamaChat{
		Model:    firstNonEmpty(req.Model, o.model),
		Messages: toOpenAIMessages(req.Messages),
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	var reply ollamaReply
	if err := o.api.call(ctx, http.MethodPost, "/api/chat", chat, &reply); err != nil {
		return nil, err
	}

	return &CompletionResponse{
		Content:      reply.Message.Content,
		Model:        reply.Model,
		FinishReason: reply.DoneReason,
		Usage: Usage{
			PromptTokens:     reply.PromptEvalCount,
			CompletionTokens: reply.EvalCount,
			TotalTokens:      reply.PromptEvalCount + reply.EvalCount,
		},
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
