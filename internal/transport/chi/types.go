package chi

// ErrorResponseCode identifies an API error class.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorResponseCodeBadRequest             ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed       ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized           ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound               ErrorResponseCode = "not_found"
	ErrorResponseCodeMethodNotAllowed       ErrorResponseCode = "method_not_allowed"
	ErrorResponseCodeInferenceFailed        ErrorResponseCode = "inference_failed"
	ErrorResponseCodeEmbeddingProviderError ErrorResponseCode = "embedding_provider_error"
	ErrorResponseCodeResourceUnavailable    ErrorResponseCode = "resource_unavailable"
	ErrorResponseCodeInternalError          ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k,omitempty"`
}

// SearchResultItem is one ranked catalog record.
type SearchResultItem struct {
	Row         int      `json:"row"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Distance    float64  `json:"distance"`
}

// SearchResultListResponse is the body of a successful search.
type SearchResultListResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// ExhibitionItem is one (exhibition, collection) group.
type ExhibitionItem struct {
	Exhibition string `json:"exhibition"`
	Collection string `json:"collection"`
	Count      int    `json:"count"`
	Display    string `json:"display"`
}

// ExhibitionListResponse is the body of GET /v1/exhibitions.
type ExhibitionListResponse struct {
	Items []ExhibitionItem `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
