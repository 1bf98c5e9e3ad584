package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	result    EmbeddingResult
	err       error
	got       string
	healthErr error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

func (s *stubEmbedder) HealthCheck(_ context.Context) error { return s.healthErr }

type plainEmbedder struct{}

func (plainEmbedder) Embed(_ context.Context, _ string) (EmbeddingResult, error) {
	return EmbeddingResult{}, nil
}

func TestInstructionEmbedder_PrependsInstruction(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewInstructionEmbedder(inner, "query: ")

	result, err := emb.Embed(context.Background(), "икона богоматери")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "query: икона богоматери" {
		t.Errorf("expected prepended text, got %q", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestInstructionEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	emb := NewInstructionEmbedder(&stubEmbedder{err: innerErr}, "query: ")

	_, err := emb.Embed(context.Background(), "hello")
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestInstructionEmbedder_HealthCheck(t *testing.T) {
	down := errors.New("down")
	emb := NewInstructionEmbedder(&stubEmbedder{healthErr: down}, "")
	if err := emb.HealthCheck(context.Background()); !errors.Is(err, down) {
		t.Errorf("expected inner health error, got %v", err)
	}

	plain := NewInstructionEmbedder(plainEmbedder{}, "")
	if err := plain.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected nil for embedder without health check, got %v", err)
	}
}

func TestResourceError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := NewMissingResource(ResourceIndex, "models/index.bin", cause)

	if !errors.Is(err, ErrResourceMissing) {
		t.Error("expected ErrResourceMissing")
	}
	if !errors.Is(err, cause) {
		t.Error("expected original cause")
	}
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatal("expected *ResourceError")
	}
	if re.Kind != ResourceIndex || re.Path != "models/index.bin" {
		t.Errorf("unexpected resource error fields: %+v", re)
	}

	malformed := NewMalformedResource(ResourceCorpus, "data.csv", cause)
	if !errors.Is(malformed, ErrMalformedInput) || errors.Is(malformed, ErrResourceMissing) {
		t.Errorf("unexpected classification: %v", malformed)
	}
}
