package search

import (
	"context"

	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
	"github.com/kailas-cloud/museum-search/internal/repository/index"
)

// Transformer maps query text to a topic distribution.
type Transformer interface {
	NumTopics() int
	Transform(ctx context.Context, text string) ([]float64, error)
}

// Index answers exact nearest-neighbor queries over normalized topic vectors.
type Index interface {
	Dim() int
	Len() int
	Search(query []float32, k int) ([]index.Neighbor, error)
}

// Corpus resolves index rows back to catalog records.
type Corpus interface {
	Len() int
	At(row int) catalog.Record
}
