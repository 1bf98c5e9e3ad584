package museum

import "github.com/kailas-cloud/museum-search/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrResourceMissing        = domain.ErrResourceMissing
	ErrMalformedInput         = domain.ErrMalformedInput
	ErrInference              = domain.ErrInference
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
