// Package predict turns a free-text case description into a list of
// suggested BNS sections by asking an LLM provider, and records every
// successful answer in the session history.
package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/firpredict/internal/llm"
	"github.com/sant0-9/firpredict/internal/logging"
	"github.com/sant0-9/firpredict/internal/prompts"
	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

var (
	// ErrEmptyInput is returned when the case description is blank
	ErrEmptyInput = errors.New("case description is empty")

	// ErrPredictorUnavailable wraps every provider failure
	ErrPredictorUnavailable = errors.New("predictor unavailable")
)

// Options tunes the completion request
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Predictor asks the provider for sections and appends results to history
type Predictor struct {
	provider llm.Provider
	history  *session.History
	logger   *zap.Logger
	opts     Options
}

// Result is one successful prediction
type Result struct {
	Record session.Record
	Lines  []sections.Line
	Usage  llm.Usage
}

// New creates a predictor. A nil history gets a fresh one.
func New(provider llm.Provider, history *session.History, logger *zap.Logger, opts Options) *Predictor {
	if history == nil {
		history = session.NewHistory()
	}
	return &Predictor{
		provider: provider,
		history:  history,
		logger:   logging.OrNop(logger).Named("predict"),
		opts:     opts,
	}
}

func (p *Predictor) History() *session.History {
	return p.history
}

func (p *Predictor) ProviderName() string {
	if p.provider == nil {
		return ""
	}
	return p.provider.Name()
}

// Predict sends the case to the provider. The case text is stored
// verbatim; the reply is trimmed of surrounding whitespace.
func (p *Predictor) Predict(ctx context.Context, caseText string) (*Result, error) {
	if strings.TrimSpace(caseText) == "" {
		return nil, ErrEmptyInput
	}
	if p.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrPredictorUnavailable)
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	log := p.logger.With(
		zap.String("provider", p.provider.Name()),
		zap.String("model", p.opts.Model),
	)
	log.Debug("prediction started", zap.Int("case_bytes", len(caseText)))
	start := time.Now()

	req := llm.NewUserRequest(p.opts.Model, prompts.BuildSectionPrompt(caseText), p.opts.MaxTokens, p.opts.Temperature)
	resp, err := p.provider.Complete(ctx, req)
	if err != nil {
		log.Warn("prediction failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", ErrPredictorUnavailable, err)
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		log.Warn("prediction failed", zap.String("reason", "empty reply"))
		return nil, fmt.Errorf("%w: empty reply from %s", ErrPredictorUnavailable, p.provider.Name())
	}

	rec := session.NewRecord(caseText, reply)
	rec.Provider = p.provider.Name()
	rec.Model = resp.Model
	if rec.Model == "" {
		rec.Model = p.opts.Model
	}
	p.history.Append(rec)

	lines := sections.Parse(reply)
	log.Info("prediction complete",
		zap.String("record", rec.ID),
		zap.Int("sections", len(sections.Sections(lines))),
		zap.Int("reply_bytes", len(reply)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{Record: rec, Lines: lines, Usage: resp.Usage}, nil
}
