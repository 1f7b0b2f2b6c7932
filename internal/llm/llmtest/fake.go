// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/firpredict/internal/llm"
)

// Provider replays a fixed reply or error and records every request
type Provider struct {
	Reply string
	Err   error

	mu       sync.Mutex
	requests []*llm.CompletionRequest
}

func (p *Provider) Name() string {
	return "fake"
}

func (p *Provider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return &llm.CompletionResponse{
		Content: p.Reply,
		Model:   req.Model,
		Usage:   llm.Usage{TotalTokens: len(p.Reply) / 4},
	}, nil
}

func (p *Provider) Ping(ctx context.Context) error {
	return p.Err
}

// Calls reports how many completions were requested
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// LastRequest returns the most recent request, or nil
func (p *Provider) LastRequest() *llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	return p.requests[len(p.requests)-1]
}
