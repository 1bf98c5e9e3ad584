package museum

import (
	"context"
	"errors"
	"testing"

	domexh "github.com/kailas-cloud/museum-search/internal/domain/exhibition"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/museum-search/internal/usecase/health"
)

func TestClient_Search(t *testing.T) {
	mock := &mockCatalog{
		searchFn: func(_ context.Context, query string, topK int) ([]result.Result, error) {
			if query != "ваза" || topK != 2 {
				t.Errorf("called with (%q, %d)", query, topK)
			}
			return []result.Result{
				result.New(7, 0.25, "Ваза", "https://example.org/7", []string{"Гончар"}, "Расписная ваза"),
			}, nil
		},
	}

	c := &Client{catalog: mock}
	got, err := c.Search(context.Background(), "ваза", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Exhibit{Row: 7, Name: "Ваза", URL: "https://example.org/7",
		Authors: []string{"Гончар"}, Description: "Расписная ваза", Distance: 0.25}
	if len(got) != 1 || got[0].Row != want.Row || got[0].Name != want.Name ||
		got[0].Authors[0] != want.Authors[0] || got[0].Distance != want.Distance {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClient_Search_Error(t *testing.T) {
	mock := &mockCatalog{
		searchFn: func(context.Context, string, int) ([]result.Result, error) {
			return nil, ErrInference
		},
	}

	_, err := (&Client{catalog: mock}).Search(context.Background(), "x", 1)
	if !errors.Is(err, ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}

func TestClient_TopExhibitions(t *testing.T) {
	mock := &mockCatalog{
		groupsFn: func(context.Context, int) ([]domexh.Group, error) {
			return []domexh.Group{domexh.NewGroup("Русский авангард", "", 4)}, nil
		},
	}

	got, err := (&Client{catalog: mock}).TopExhibitions(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Count != 4 || got[0].Display != "Русский авангард, Музей не указан" {
		t.Errorf("unexpected exhibitions: %+v", got)
	}
}

func TestClient_Health(t *testing.T) {
	mock := &mockCatalog{
		report: healthuc.Report{
			Status: healthuc.Degraded,
			Checks: map[string]healthuc.CheckResult{
				healthuc.CheckIndex: healthuc.CheckOK,
				healthuc.CheckCache: healthuc.CheckError,
			},
		},
	}

	h := (&Client{catalog: mock}).Health(context.Background())
	if h.Status != "degraded" || h.Checks["cache"] != "error" || h.Checks["index"] != "ok" {
		t.Errorf("unexpected health: %+v", h)
	}
}

// --- Mocks ---

type mockCatalog struct {
	searchFn func(ctx context.Context, query string, topK int) ([]result.Result, error)
	groupsFn func(ctx context.Context, topK int) ([]domexh.Group, error)
	report   healthuc.Report
}

func (m *mockCatalog) Search(ctx context.Context, query string, topK int) ([]result.Result, error) {
	return m.searchFn(ctx, query, topK)
}

func (m *mockCatalog) TopExhibitions(ctx context.Context, topK int) ([]domexh.Group, error) {
	return m.groupsFn(ctx, topK)
}

func (m *mockCatalog) Display(g domexh.Group) string { return g.Display("") }

func (m *mockCatalog) Health(context.Context) healthuc.Report { return m.report }
