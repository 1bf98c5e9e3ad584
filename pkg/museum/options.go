package museum

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpusPath     string
	topicModelPath string
	indexPath      string

	embedder    Embedder
	model       string
	instruction string
	temperature float64

	defaultTopK      int
	descriptionLimit int
	placeholder      string

	cacheDriver   string // "valkey" or "redis"
	cacheAddrs    []string
	cachePassword string
	cacheTTLSec   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCorpus sets the corpus file: .csv, .json, .jsonl or .parquet.
func WithCorpus(path string) Option {
	return optionFunc(func(c *clientConfig) { c.corpusPath = path })
}

// WithTopicModel sets the topic model artifact (JSON).
func WithTopicModel(path string) Option {
	return optionFunc(func(c *clientConfig) { c.topicModelPath = path })
}

// WithIndex sets the index blob written by BuildIndex.
func WithIndex(path string) Option {
	return optionFunc(func(c *clientConfig) { c.indexPath = path })
}

// WithEmbedder switches topic inference from term matching to topic centroids in
// embedding space. model names the embedding model and is mixed into cache keys.
// The topic model must carry centroids of the embedder's dimension.
func WithEmbedder(e Embedder, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
		c.model = model
	})
}

// WithQueryInstruction prefixes every query before it is embedded.
func WithQueryInstruction(instruction string) Option {
	return optionFunc(func(c *clientConfig) { c.instruction = instruction })
}

// WithTemperature sets the softmax temperature of embedding inference. Default: 0.1.
func WithTemperature(t float64) Option {
	return optionFunc(func(c *clientConfig) { c.temperature = t })
}

// WithDefaultTopK sets the result count used when a call passes topK=0. Default: 3.
func WithDefaultTopK(k int) Option {
	return optionFunc(func(c *clientConfig) { c.defaultTopK = k })
}

// WithDescriptionLimit sets the description length, in characters, of a hit. Default: 200.
func WithDescriptionLimit(n int) Option {
	return optionFunc(func(c *clientConfig) { c.descriptionLimit = n })
}

// WithCollectionPlaceholder sets the text shown for exhibitions without a collection.
func WithCollectionPlaceholder(s string) Option {
	return optionFunc(func(c *clientConfig) { c.placeholder = s })
}

// WithValkeyCache caches query embeddings in a Valkey instance.
// Only used together with WithEmbedder.
func WithValkeyCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "valkey"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithRedisCache caches query embeddings in a Redis instance.
// Only used together with WithEmbedder.
func WithRedisCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithCacheTTL sets how long cached embeddings live, in seconds. Default: 7 days.
func WithCacheTTL(seconds int) Option {
	return optionFunc(func(c *clientConfig) { c.cacheTTLSec = seconds })
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = l })
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) { c.metricsReg = reg })
}
