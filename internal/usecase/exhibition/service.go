// Package exhibition ranks (exhibition, collection) pairs by how many records they hold.
package exhibition

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/museum-search/internal/domain"
	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/metrics"
)

// DefaultTopK is the number of groups returned when the caller does not ask for a specific count.
const DefaultTopK = 3

// Service aggregates the corpus on demand; nothing is cached between calls.
type Service struct {
	corpus Corpus
}

// New creates an exhibition aggregation service.
func New(corpus Corpus) *Service {
	return &Service{corpus: corpus}
}

type groupKey struct {
	exhibition string
	collection string
}

// Top returns up to topK groups by descending record count. topK=0 selects DefaultTopK.
// Groups with equal counts keep the order in which they first appear in the corpus.
func (s *Service) Top(ctx context.Context, topK int) ([]domexh.Group, error) {
	if topK < 0 {
		metrics.ExhibitionRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: top_k must not be negative, got %d", domain.ErrInvalidQuery, topK)
	}
	if topK == 0 {
		topK = DefaultTopK
	}
	if err := ctx.Err(); err != nil {
		metrics.ExhibitionRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("aggregate exhibitions: %w", err)
	}

	counts := make(map[groupKey]int)
	var order []groupKey
	for i := 0; i < s.corpus.Len(); i++ {
		rec := s.corpus.At(i)
		k := groupKey{exhibition: rec.Exhibition, collection: rec.Collection}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > topK {
		order = order[:topK]
	}

	out := make([]domexh.Group, len(order))
	for i, k := range order {
		out[i] = domexh.NewGroup(k.exhibition, k.collection, counts[k])
	}
	metrics.ExhibitionRequestsTotal.WithLabelValues("success").Inc()
	return out, nil
}
