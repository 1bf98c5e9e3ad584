package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/search/request"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	"github.com/kailas-cloud/museum-search/internal/domain/vector"
	"github.com/kailas-cloud/museum-search/internal/logger"
	"github.com/kailas-cloud/museum-search/internal/metrics"
)

// Service answers free-text queries with the nearest catalog records in topic space.
type Service struct {
	corpus    Corpus
	index     Index
	model     Transformer
	inference string
	descLimit int
}

// New creates a search service. descLimit<=0 selects result.DefaultDescriptionLimit.
// inference labels the topic transform metric.
func New(corpus Corpus, idx Index, model Transformer, inference string, descLimit int) *Service {
	if descLimit <= 0 {
		descLimit = result.DefaultDescriptionLimit
	}
	return &Service{
		corpus:    corpus,
		index:     idx,
		model:     model,
		inference: inference,
		descLimit: descLimit,
	}
}

// Search returns min(topK, corpus size) hits ordered from nearest to farthest.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()
	results, err := s.search(ctx, req)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchDuration.Observe(duration.Seconds())

	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn("Search failed", zap.Int("top_k", req.TopK()), zap.Error(err))
		return nil, err
	}
	metrics.SearchResultsReturned.Observe(float64(len(results)))
	log.Debug("Search completed",
		zap.Int("top_k", req.TopK()),
		zap.Int("hits", len(results)),
		zap.Duration("duration", duration),
	)
	return results, nil
}

func (s *Service) search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	q, err := s.vectorize(ctx, req.Query())
	if err != nil {
		return nil, err
	}

	hits, err := s.index.Search(q, req.Effective(s.corpus.Len()))
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	out := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		rec := s.corpus.At(h.Row)
		out = append(out, result.New(
			h.Row, h.Distance, rec.Title, rec.URL, rec.Authors,
			result.Truncate(rec.Description, s.descLimit),
		))
	}
	return out, nil
}

// vectorize runs the topic model and normalizes its output exactly as the index rows were.
func (s *Service) vectorize(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	dist, err := s.model.Transform(ctx, query)
	metrics.TopicTransformDuration.WithLabelValues(s.inference).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrInference) {
			return nil, fmt.Errorf("transform query: %w", err)
		}
		return nil, fmt.Errorf("transform query: %w: %w", domain.ErrInference, err)
	}
	if len(dist) != s.index.Dim() {
		return nil, fmt.Errorf("%w: topic vector has %d components, index expects %d",
			domain.ErrInference, len(dist), s.index.Dim())
	}
	return vector.Normalize(dist), nil
}
