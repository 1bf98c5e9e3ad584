package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceMissing signals that a required artifact (corpus, topic model, index) is absent.
	ErrResourceMissing = errors.New("resource missing")
	// ErrMalformedInput signals structurally invalid input data (empty corpus, misaligned rows).
	ErrMalformedInput = errors.New("malformed input")
	// ErrInference signals that the topic model could not produce a distribution for a query.
	ErrInference = errors.New("topic inference failed")
	// ErrInvalidQuery signals invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// Resource kinds reported by ResourceError.
const (
	ResourceCorpus     = "corpus"
	ResourceTopicModel = "topic model"
	ResourceIndex      = "index"
)

// ResourceError describes a failure to load one of the startup artifacts.
type ResourceError struct {
	Kind string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("load %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewMissingResource reports an artifact that does not exist at path.
func NewMissingResource(kind, path string, cause error) error {
	return &ResourceError{Kind: kind, Path: path, Err: fmt.Errorf("%w: %w", ErrResourceMissing, cause)}
}

// NewMalformedResource reports an artifact that exists but cannot be decoded.
func NewMalformedResource(kind, path string, cause error) error {
	return &ResourceError{Kind: kind, Path: path, Err: fmt.Errorf("%w: %w", ErrMalformedInput, cause)}
}
