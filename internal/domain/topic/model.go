// Package topic defines the topic model contract and the term-weight inference path.
package topic

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// Inference names how a query is mapped onto topics.
type Inference string

// Supported inference paths.
const (
	InferenceTerms     Inference = "terms"
	InferenceEmbedding Inference = "embedding"
)

// IsValid reports whether the inference path is known.
func (i Inference) IsValid() bool {
	return i == InferenceTerms || i == InferenceEmbedding
}

// Model maps text to a probability distribution over a fixed set of topics.
type Model interface {
	// NumTopics returns the length of every distribution the model produces.
	NumTopics() int
	// Transform returns exactly one distribution of length NumTopics for text.
	// Empty or unknown input yields a valid distribution, not an error.
	Transform(ctx context.Context, text string) ([]float64, error)
	// DocumentProbabilities returns the per-document distributions computed during
	// training, in corpus order, or nil when the artifact was saved without them.
	DocumentProbabilities() [][]float64
}

// Topic is one trained topic.
type Topic struct {
	ID       int                `json:"id"`
	Label    string             `json:"label,omitempty"`
	Terms    map[string]float64 `json:"terms,omitempty"`
	Centroid []float64          `json:"centroid,omitempty"`
}

// Artifact is the persisted output of the external training pipeline.
type Artifact struct {
	Topics        []Topic            `json:"topics"`
	IDF           map[string]float64 `json:"idf,omitempty"`
	Probabilities [][]float64        `json:"probabilities,omitempty"`
}

// NumTopics returns the number of topics.
func (a *Artifact) NumTopics() int { return len(a.Topics) }

// DocumentProbabilities returns the stored per-document distributions.
func (a *Artifact) DocumentProbabilities() [][]float64 { return a.Probabilities }

// Validate checks the artifact can back the given inference path.
func (a *Artifact) Validate(inference Inference) error {
	if len(a.Topics) == 0 {
		return fmt.Errorf("%w: topic model has no topics", domain.ErrMalformedInput)
	}
	switch inference {
	case InferenceTerms:
		for i, t := range a.Topics {
			if len(t.Terms) == 0 {
				return fmt.Errorf("%w: topic %d has no terms", domain.ErrMalformedInput, i)
			}
		}
	case InferenceEmbedding:
		dim := len(a.Topics[0].Centroid)
		for i, t := range a.Topics {
			if len(t.Centroid) == 0 || len(t.Centroid) != dim {
				return fmt.Errorf("%w: topic %d centroid has dimension %d, want %d",
					domain.ErrMalformedInput, i, len(t.Centroid), dim)
			}
		}
	default:
		return fmt.Errorf("%w: unknown inference %q", domain.ErrMalformedInput, inference)
	}
	return nil
}

// Uniform returns the distribution that assigns equal mass to n topics.
func Uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}
