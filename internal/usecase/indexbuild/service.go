// Package indexbuild turns topic-model document distributions into the nearest-neighbor index.
package indexbuild

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/vector"
	"github.com/kailas-cloud/museum-search/internal/repository/index"
)

// ErrMissingProbabilities means the topic model was saved without document probabilities,
// which happens when training ran without probability calculation enabled.
var ErrMissingProbabilities = fmt.Errorf("%w: topic model has no document probabilities", domain.ErrResourceMissing)

// Service builds and persists the index.
type Service struct {
	logger *zap.Logger
}

// New creates an index build service.
func New(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Build validates the model's document distributions against the corpus and returns an
// index over their L2-normalized rows, in corpus order.
func (s *Service) Build(ctx context.Context, corpus Corpus, model ProbabilitySource) (*index.Flat, error) {
	probs := model.DocumentProbabilities()
	if probs == nil {
		return nil, ErrMissingProbabilities
	}
	if len(probs) != corpus.Len() {
		return nil, fmt.Errorf("%w: %d probability rows for %d corpus records",
			domain.ErrMalformedInput, len(probs), corpus.Len())
	}

	dim := model.NumTopics()
	if dim <= 0 && len(probs) > 0 {
		dim = len(probs[0])
	}
	for i, row := range probs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build index: %w", err)
		}
		if err := checkRow(row, dim); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", domain.ErrMalformedInput, i, err)
		}
	}

	start := time.Now()
	f, err := index.New(dim, vector.NormalizeRows(probs))
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	s.logger.Info("Index built",
		zap.Int("rows", f.Len()),
		zap.Int("dim", f.Dim()),
		zap.Duration("duration", time.Since(start)),
	)
	return f, nil
}

// BuildAndSave builds the index and writes it to path. Nothing is written on failure.
func (s *Service) BuildAndSave(ctx context.Context, corpus Corpus, model ProbabilitySource, path string) (*index.Flat, error) {
	f, err := s.Build(ctx, corpus, model)
	if err != nil {
		return nil, err
	}
	if err := index.WriteFile(path, f); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}
	s.logger.Info("Index saved", zap.String("path", path))
	return f, nil
}

func checkRow(row []float64, dim int) error {
	if len(row) != dim {
		return fmt.Errorf("dimension %d, want %d", len(row), dim)
	}
	for j, x := range row {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("component %d is not finite", j)
		}
		if x < 0 {
			return errors.New("negative probability")
		}
	}
	return nil
}
