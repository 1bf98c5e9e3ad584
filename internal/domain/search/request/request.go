package request

import (
	"fmt"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// DefaultTopK is the number of hits returned when the caller does not ask for a specific count.
const DefaultTopK = 3

// Request is a validated search query.
type Request struct {
	query string
	topK  int
}

// New validates search parameters. topK=0 selects DefaultTopK; negative values are rejected.
// The query text is not validated: empty input still produces a (uniform) topic distribution.
func New(query string, topK int) (Request, error) {
	if topK < 0 {
		return Request{}, fmt.Errorf("%w: top_k must not be negative, got %d", domain.ErrInvalidQuery, topK)
	}
	if topK == 0 {
		topK = DefaultTopK
	}
	return Request{query: query, topK: topK}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// TopK returns the requested number of hits.
func (r *Request) TopK() int { return r.topK }

// Effective returns the number of hits actually produced for a corpus of size n.
func (r *Request) Effective(n int) int {
	if n < r.topK {
		return n
	}
	return r.topK
}
