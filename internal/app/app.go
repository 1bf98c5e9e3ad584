// Package app assembles the loaded search artifacts into one immutable context shared by every request.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/config"
	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/request"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	domtopic "github.com/kailas-cloud/museum-search/internal/domain/topic"
	"github.com/kailas-cloud/museum-search/internal/metrics"
	"github.com/kailas-cloud/museum-search/internal/repository/corpus"
	"github.com/kailas-cloud/museum-search/internal/repository/index"
	"github.com/kailas-cloud/museum-search/internal/repository/topicmodel"
	exhibitionuc "github.com/kailas-cloud/museum-search/internal/usecase/exhibition"
	healthuc "github.com/kailas-cloud/museum-search/internal/usecase/health"
	indexbuilduc "github.com/kailas-cloud/museum-search/internal/usecase/indexbuild"
	searchuc "github.com/kailas-cloud/museum-search/internal/usecase/search"
	topicuc "github.com/kailas-cloud/museum-search/internal/usecase/topic"
)

// ErrEmbedderRequired is returned when embedding inference is selected without an embedder.
var ErrEmbedderRequired = errors.New("embedding inference requires an embedder")

// Options configures Load and BuildIndex.
type Options struct {
	CorpusPath     string
	TopicModelPath string
	IndexPath      string

	Inference   domtopic.Inference
	Temperature float64

	DefaultTopK      int
	DescriptionLimit int
	Placeholder      string

	// Embedder backs embedding inference; ignored for term inference.
	Embedder domain.Embedder
	// Cache is reported by Health when set.
	Cache healthuc.CachePinger

	Logger *zap.Logger
}

// OptionsFromConfig maps the service configuration onto Options.
// Embedder and Cache are left for the caller to wire.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CorpusPath:       cfg.Data.CorpusPath,
		TopicModelPath:   cfg.Data.TopicModelPath,
		IndexPath:        cfg.Data.IndexPath,
		Inference:        domtopic.Inference(cfg.TopicModel.Inference),
		Temperature:      cfg.TopicModel.Temperature,
		DefaultTopK:      cfg.Search.DefaultTopK,
		DescriptionLimit: cfg.Search.DescriptionLimit,
		Placeholder:      cfg.Search.CollectionPlaceholder,
	}
}

func (o *Options) applyDefaults() {
	if o.Inference == "" {
		o.Inference = domtopic.InferenceTerms
	}
	if o.DefaultTopK <= 0 {
		o.DefaultTopK = request.DefaultTopK
	}
	if o.DescriptionLimit <= 0 {
		o.DescriptionLimit = result.DefaultDescriptionLimit
	}
	if o.Placeholder == "" {
		o.Placeholder = domexh.DefaultPlaceholder
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// App holds the corpus, the topic model and the index. It is never mutated after Load.
type App struct {
	corpus      *catalog.Corpus
	index       *index.Flat
	model       domtopic.Model
	inference   domtopic.Inference
	defaultTopK int
	placeholder string

	search      *searchuc.Service
	exhibitions *exhibitionuc.Service
	health      *healthuc.Service
}

// Load reads all three artifacts and checks that they are aligned.
// Any error is fatal for the caller: the App is not usable without every artifact.
func Load(ctx context.Context, opts Options) (*App, error) {
	opts.applyDefaults()
	log := opts.Logger
	start := time.Now()

	if !opts.Inference.IsValid() {
		return nil, fmt.Errorf("%w: unknown inference %q", domain.ErrMalformedInput, opts.Inference)
	}
	if opts.Inference == domtopic.InferenceEmbedding && opts.Embedder == nil {
		return nil, ErrEmbedderRequired
	}

	corp, err := corpus.Load(opts.CorpusPath)
	if err != nil {
		return nil, err
	}
	log.Info("Corpus loaded", zap.String("path", opts.CorpusPath), zap.Int("records", corp.Len()))

	model, err := loadModel(opts)
	if err != nil {
		return nil, err
	}
	log.Info("Topic model loaded",
		zap.String("path", opts.TopicModelPath),
		zap.String("inference", string(opts.Inference)),
		zap.Int("topics", model.NumTopics()),
	)

	idx, err := index.ReadFile(opts.IndexPath)
	if err != nil {
		return nil, err
	}
	log.Info("Index loaded", zap.String("path", opts.IndexPath), zap.Int("rows", idx.Len()), zap.Int("dim", idx.Dim()))

	if idx.Len() != corp.Len() {
		return nil, domain.NewMalformedResource(domain.ResourceIndex, opts.IndexPath,
			fmt.Errorf("index has %d rows, corpus has %d records", idx.Len(), corp.Len()))
	}
	if idx.Dim() != model.NumTopics() {
		return nil, domain.NewMalformedResource(domain.ResourceIndex, opts.IndexPath,
			fmt.Errorf("index dimension %d, topic model has %d topics", idx.Dim(), model.NumTopics()))
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load app: %w", err)
	}

	var embeddingChecker healthuc.EmbeddingChecker
	if hc, ok := opts.Embedder.(domain.HealthChecker); ok && opts.Inference == domtopic.InferenceEmbedding {
		embeddingChecker = hc
	}

	metrics.CorpusRecords.Set(float64(corp.Len()))
	metrics.IndexRows.Set(float64(idx.Len()))
	metrics.TopicCount.Set(float64(model.NumTopics()))

	log.Info("Search context ready", zap.Duration("duration", time.Since(start)))

	return &App{
		corpus:      corp,
		index:       idx,
		model:       model,
		inference:   opts.Inference,
		defaultTopK: opts.DefaultTopK,
		placeholder: opts.Placeholder,
		search:      searchuc.New(corp, idx, model, string(opts.Inference), opts.DescriptionLimit),
		exhibitions: exhibitionuc.New(corp),
		health:      healthuc.New(corp, idx, model, opts.Cache, embeddingChecker),
	}, nil
}

func loadModel(opts Options) (domtopic.Model, error) {
	art, err := topicmodel.Load(opts.TopicModelPath, opts.Inference)
	if err != nil {
		return nil, err
	}
	var model domtopic.Model
	switch opts.Inference {
	case domtopic.InferenceEmbedding:
		model, err = topicuc.NewCentroidModel(art, opts.Embedder, opts.Temperature)
	default:
		model, err = domtopic.NewTermModel(art)
	}
	if err != nil {
		return nil, &domain.ResourceError{Kind: domain.ResourceTopicModel, Path: opts.TopicModelPath, Err: err}
	}
	return model, nil
}

// BuildIndex turns the topic model's document distributions into an index blob at opts.IndexPath.
func BuildIndex(ctx context.Context, opts Options) (*index.Flat, error) {
	opts.applyDefaults()

	corp, err := corpus.Load(opts.CorpusPath)
	if err != nil {
		return nil, err
	}
	art, err := topicmodel.Load(opts.TopicModelPath, opts.Inference)
	if err != nil {
		return nil, err
	}
	return indexbuilduc.New(opts.Logger).BuildAndSave(ctx, corp, art, opts.IndexPath)
}

// Search returns the topK catalog records closest to query. topK=0 selects the configured default.
func (a *App) Search(ctx context.Context, query string, topK int) ([]result.Result, error) {
	if topK == 0 {
		topK = a.defaultTopK
	}
	req, err := request.New(query, topK)
	if err != nil {
		return nil, err
	}
	return a.search.Search(ctx, &req)
}

// TopExhibitions returns the topK largest (exhibition, collection) groups.
// topK=0 selects the configured default.
func (a *App) TopExhibitions(ctx context.Context, topK int) ([]domexh.Group, error) {
	if topK == 0 {
		topK = a.defaultTopK
	}
	return a.exhibitions.Top(ctx, topK)
}

// Display renders a group with the configured placeholder for a blank collection.
func (a *App) Display(g domexh.Group) string { return g.Display(a.placeholder) }

// Health runs the component checks.
func (a *App) Health(ctx context.Context) healthuc.Report { return a.health.Check(ctx) }

// Corpus returns the loaded corpus.
func (a *App) Corpus() *catalog.Corpus { return a.corpus }

// Index returns the loaded index.
func (a *App) Index() *index.Flat { return a.index }

// NumTopics returns the topic model size.
func (a *App) NumTopics() int { return a.model.NumTopics() }

// Inference returns the configured inference path.
func (a *App) Inference() domtopic.Inference { return a.inference }
