package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/config"
	dbRedis "github.com/kailas-cloud/museum-search/internal/db/redis"
	"github.com/kailas-cloud/museum-search/internal/domain"
	domtopic "github.com/kailas-cloud/museum-search/internal/domain/topic"
	"github.com/kailas-cloud/museum-search/internal/metrics"
	"github.com/kailas-cloud/museum-search/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/museum-search/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/museum-search/internal/usecase/embedding"
)

// Wire turns cfg into Options, connecting the cache and the embedding provider when
// the configuration asks for them. The returned cleanup releases the cache connection.
func Wire(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Options, func(), error) {
	opts := OptionsFromConfig(cfg)
	opts.Logger = logger
	cleanup := func() {}

	var store *dbRedis.Store
	if cfg.Cache.Enabled {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return Options{}, cleanup, fmt.Errorf("create %s cache: %w", cfg.Cache.Driver, err)
		}
		if err := s.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			s.Close()
			return Options{}, cleanup, fmt.Errorf("%s cache not ready: %w", cfg.Cache.Driver, err)
		}
		logger.Info("Connected to cache",
			zap.String("driver", cfg.Cache.Driver),
			zap.Strings("addrs", cfg.Cache.Addrs),
		)
		store = s
		opts.Cache = s
		cleanup = s.Close
	}

	if opts.Inference == domtopic.InferenceEmbedding {
		metrics.RegisterEmbeddingMetrics()
		opts.Embedder = buildEmbedder(&cfg.Embedding, store, time.Duration(cfg.Cache.TTLSec)*time.Second, logger)
		logger.Info("Embedder created",
			zap.String("provider", cfg.Embedding.Provider),
			zap.String("model", cfg.Embedding.Model),
			zap.Bool("cached", store != nil),
		)
	}

	return opts, cleanup, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Instrumented -> Cached -> Instruction.
func buildEmbedder(
	cfg *config.EmbeddingConfig,
	store *dbRedis.Store,
	ttl time.Duration,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	var embedder domain.Embedder = embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Provider, cfg.Model,
		time.Duration(cfg.SlowRequestMs)*time.Millisecond, logger,
	)

	// Cache hits skip the provider entirely, so they are not logged as provider calls.
	if store != nil {
		embedder = embcache.New(embedder, store, ttl, cfg.Model, metrics.EmbeddingCacheTotal, logger)
	}

	// Instruction prefix (outermost, so the cache key includes it)
	if cfg.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, cfg.QueryInstruction)
	}
	return embedder
}
