package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// DefaultSlowThreshold is the request duration above which an embedding call is logged at warn level.
const DefaultSlowThreshold = 2 * time.Second

// InstrumentedEmbedder wraps Embedder with request logging.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	slow     time.Duration
	logger   *zap.Logger
}

// NewInstrumentedEmbedder wraps an embedder with observability. slow<=0 selects DefaultSlowThreshold.
func NewInstrumentedEmbedder(
	inner domain.Embedder, provider, model string,
	slow time.Duration, logger *zap.Logger,
) *InstrumentedEmbedder {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return &InstrumentedEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		slow:     slow,
		logger:   logger,
	}
}

// Embed delegates to the inner embedder and logs the outcome.
func (p *InstrumentedEmbedder) Embed(
	ctx context.Context, text string,
) (domain.EmbeddingResult, error) {
	start := time.Now()
	result, err := p.inner.Embed(ctx, text)
	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Embedding request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	fields := []zap.Field{
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
	}
	if duration >= p.slow {
		p.logger.Warn("Slow embedding request", fields...)
	} else {
		p.logger.Debug("Embedding request completed", fields...)
	}

	return result, nil
}

// HealthCheck forwards to the inner embedder when it supports health checks.
func (p *InstrumentedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
