package topic

import (
	"context"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// Embedder vectorizes query text into the space the topic centroids live in.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
