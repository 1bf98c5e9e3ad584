package museum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/app"
	dbRedis "github.com/kailas-cloud/museum-search/internal/db/redis"
	"github.com/kailas-cloud/museum-search/internal/domain"
	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	domtopic "github.com/kailas-cloud/museum-search/internal/domain/topic"
	"github.com/kailas-cloud/museum-search/internal/repository/embcache"
	healthuc "github.com/kailas-cloud/museum-search/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 7 * 24 * time.Hour
)

// catalog is the internal query surface, swapped out in tests.
type catalog interface {
	Search(ctx context.Context, query string, topK int) ([]result.Result, error)
	TopExhibitions(ctx context.Context, topK int) ([]domexh.Group, error)
	Display(g domexh.Group) string
	Health(ctx context.Context) healthuc.Report
}

// Client is the museum search SDK entry point. It is safe for concurrent use.
type Client struct {
	catalog catalog
	store   *dbRedis.Store
	obs     *observer
}

// New loads the corpus, the topic model and the index, and checks that they are aligned.
// The provided context is used for loading and for the cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	appOpts := cfg.appOptions()

	var store *dbRedis.Store
	if cfg.embedder != nil {
		var embedder domain.Embedder = &embedderAdapter{inner: cfg.embedder}
		if len(cfg.cacheAddrs) > 0 {
			store, err = createStore(ctx, cfg)
			if err != nil {
				return nil, err
			}
			ttl := defaultCacheTTL
			if cfg.cacheTTLSec > 0 {
				ttl = time.Duration(cfg.cacheTTLSec) * time.Second
			}
			embedder = embcache.New(embedder, store, ttl, cfg.model, nil, zap.NewNop())
			appOpts.Cache = store
		}
		if cfg.instruction != "" {
			embedder = domain.NewInstructionEmbedder(embedder, cfg.instruction)
		}
		appOpts.Embedder = embedder
	}

	start := time.Now()
	a, err := app.Load(ctx, appOpts)
	obs.observe("load", start, err)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("museum: %w", err)
	}

	return &Client{catalog: a, store: store, obs: obs}, nil
}

// BuildIndex writes the index blob for the configured corpus and topic model and
// returns the number of indexed rows. Only the path options are used.
func BuildIndex(ctx context.Context, opts ...Option) (int, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if err := cfg.validate(); err != nil {
		return 0, err
	}

	appOpts := cfg.appOptions()
	f, err := app.BuildIndex(ctx, appOpts)
	if err != nil {
		return 0, fmt.Errorf("museum: %w", err)
	}
	return f.Len(), nil
}

func (c *clientConfig) validate() error {
	if c.corpusPath == "" || c.topicModelPath == "" || c.indexPath == "" {
		return errors.New("museum: corpus, topic model and index paths are required " +
			"(use WithCorpus, WithTopicModel and WithIndex)")
	}
	return nil
}

func (c *clientConfig) appOptions() app.Options {
	inference := domtopic.InferenceTerms
	if c.embedder != nil {
		inference = domtopic.InferenceEmbedding
	}
	return app.Options{
		CorpusPath:       c.corpusPath,
		TopicModelPath:   c.topicModelPath,
		IndexPath:        c.indexPath,
		Inference:        inference,
		Temperature:      c.temperature,
		DefaultTopK:      c.defaultTopK,
		DescriptionLimit: c.descriptionLimit,
		Placeholder:      c.placeholder,
	}
}

func createStore(ctx context.Context, cfg *clientConfig) (*dbRedis.Store, error) {
	switch cfg.cacheDriver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("museum: unknown cache driver %q", cfg.cacheDriver)
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.cacheAddrs,
		Password: cfg.cachePassword,
	})
	if err != nil {
		return nil, fmt.Errorf("museum: create %s cache: %w", cfg.cacheDriver, err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("museum: %s cache not ready: %w", cfg.cacheDriver, err)
	}
	return s, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search returns the topK catalog records closest to query, nearest first.
// topK=0 selects the default; a topK above the corpus size returns the whole corpus.
func (c *Client) Search(ctx context.Context, query string, topK int) (_ []Exhibit, err error) {
	start := time.Now()
	var n int
	defer func() { c.obs.observeN("search", start, n, err) }()

	results, err := c.catalog.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	out := make([]Exhibit, len(results))
	for i := range results {
		r := &results[i]
		out[i] = Exhibit{
			Row:         r.Row(),
			Name:        r.Name(),
			URL:         r.URL(),
			Authors:     r.Authors(),
			Description: r.Description(),
			Distance:    r.Distance(),
		}
	}
	n = len(out)
	return out, nil
}

// TopExhibitions returns the topK (exhibition, collection) groups with the most records.
// Groups with equal counts keep corpus order.
func (c *Client) TopExhibitions(ctx context.Context, topK int) (_ []Exhibition, err error) {
	start := time.Now()
	var n int
	defer func() { c.obs.observeN("top_exhibitions", start, n, err) }()

	groups, err := c.catalog.TopExhibitions(ctx, topK)
	if err != nil {
		return nil, fmt.Errorf("top exhibitions: %w", err)
	}
	out := make([]Exhibition, len(groups))
	for i, g := range groups {
		out[i] = Exhibition{
			Name:       g.Exhibition(),
			Collection: g.Collection(),
			Count:      g.Count(),
			Display:    c.catalog.Display(g),
		}
	}
	n = len(out)
	return out, nil
}

// Health checks the loaded artifacts, the cache and the embedding provider.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.catalog.Health(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
