// Package topic implements embedding-based topic inference over trained topic centroids.
package topic

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/museum-search/internal/domain"
	domtopic "github.com/kailas-cloud/museum-search/internal/domain/topic"
	"github.com/kailas-cloud/museum-search/internal/domain/vector"
)

// DefaultTemperature sharpens cosine similarities (in [-1, 1]) into a usable distribution.
const DefaultTemperature = 0.1

// CentroidModel embeds the query and softmaxes its cosine similarity to each topic centroid.
type CentroidModel struct {
	artifact    *domtopic.Artifact
	embed       Embedder
	temperature float64
	dim         int
}

// NewCentroidModel wraps an artifact with topic centroids. temperature<=0 selects DefaultTemperature.
func NewCentroidModel(a *domtopic.Artifact, embed Embedder, temperature float64) (*CentroidModel, error) {
	if err := a.Validate(domtopic.InferenceEmbedding); err != nil {
		return nil, err
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	return &CentroidModel{
		artifact:    a,
		embed:       embed,
		temperature: temperature,
		dim:         len(a.Topics[0].Centroid),
	}, nil
}

// NumTopics returns the number of topics.
func (m *CentroidModel) NumTopics() int { return m.artifact.NumTopics() }

// DocumentProbabilities returns the training-time document distributions.
func (m *CentroidModel) DocumentProbabilities() [][]float64 {
	return m.artifact.DocumentProbabilities()
}

// Transform returns the topic distribution of text. Blank text gets the uniform
// distribution without calling the embedding provider.
func (m *CentroidModel) Transform(ctx context.Context, text string) ([]float64, error) {
	n := m.NumTopics()
	if strings.TrimSpace(text) == "" {
		return domtopic.Uniform(n), nil
	}

	res, err := m.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInference, err)
	}
	if len(res.Embedding) != m.dim {
		return nil, fmt.Errorf("%w: embedding dimension %d, centroid dimension %d",
			domain.ErrInference, len(res.Embedding), m.dim)
	}

	q := vector.FromFloat32(res.Embedding)
	logits := make([]float64, n)
	for i, t := range m.artifact.Topics {
		logits[i] = vector.Cosine(q, t.Centroid) / m.temperature
	}
	return softmax(logits), nil
}

func softmax(logits []float64) []float64 {
	peak := math.Inf(-1)
	for _, x := range logits {
		if x > peak {
			peak = x
		}
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, x := range logits {
		out[i] = math.Exp(x - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
