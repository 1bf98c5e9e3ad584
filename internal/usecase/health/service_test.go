package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockSized struct{ n int }

func (m mockSized) Len() int { return m.n }

type mockIndex struct{ n, dim int }

func (m mockIndex) Len() int { return m.n }
func (m mockIndex) Dim() int { return m.dim }

type mockModel struct{ topics int }

func (m mockModel) NumTopics() int { return m.topics }

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

func healthyService(cache CachePinger, emb EmbeddingChecker) *Service {
	return New(mockSized{10}, mockIndex{10, 5}, mockModel{5}, cache, emb)
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	r := healthyService(&mockCachePinger{}, &mockEmbeddingChecker{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{CheckCorpus, CheckIndex, CheckTopicModel, CheckCache, CheckEmbedding} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_CacheError(t *testing.T) {
	r := healthyService(&mockCachePinger{err: errors.New("conn refused")}, &mockEmbeddingChecker{}).
		Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckCache] != CheckError {
		t.Errorf("expected cache %q, got %q", CheckError, r.Checks[CheckCache])
	}
	if r.Checks[CheckEmbedding] != CheckOK {
		t.Errorf("expected embedding %q, got %q", CheckOK, r.Checks[CheckEmbedding])
	}
}

func TestCheck_EmbeddingError(t *testing.T) {
	r := healthyService(nil, &mockEmbeddingChecker{err: errors.New("timeout")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckEmbedding] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks[CheckEmbedding])
	}
}

func TestCheck_NoOptionalDependencies(t *testing.T) {
	r := healthyService(nil, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckCache]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
	if _, ok := r.Checks[CheckEmbedding]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
}

func TestCheck_MisalignedArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		svc   *Service
		check string
	}{
		{"empty corpus", New(mockSized{0}, mockIndex{0, 5}, mockModel{5}, nil, nil), CheckCorpus},
		{"index rows", New(mockSized{10}, mockIndex{9, 5}, mockModel{5}, nil, nil), CheckIndex},
		{"topic width", New(mockSized{10}, mockIndex{10, 5}, mockModel{4}, nil, nil), CheckTopicModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.svc.Check(context.Background())
			if r.Status != Unhealthy {
				t.Errorf("expected %q, got %q", Unhealthy, r.Status)
			}
			if r.Checks[tt.check] != CheckError {
				t.Errorf("expected %s %q, got %q", tt.check, CheckError, r.Checks[tt.check])
			}
		})
	}
}

func TestCheck_UnhealthyWinsOverDegraded(t *testing.T) {
	svc := New(mockSized{10}, mockIndex{9, 5}, mockModel{5}, &mockCachePinger{err: errors.New("down")}, nil)
	if r := svc.Check(context.Background()); r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}
