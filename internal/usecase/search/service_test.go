package search

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/catalog"
	"github.com/kailas-cloud/museum-search/internal/domain/search/request"
	"github.com/kailas-cloud/museum-search/internal/domain/vector"
	"github.com/kailas-cloud/museum-search/internal/metrics"
	"github.com/kailas-cloud/museum-search/internal/repository/index"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockModel struct {
	topics int
	out    []float64
	err    error
	got    string
}

func (m *mockModel) NumTopics() int { return m.topics }

func (m *mockModel) Transform(_ context.Context, text string) ([]float64, error) {
	m.got = text
	return m.out, m.err
}

var testProbs = [][]float64{
	{0.8, 0.1, 0.1},
	{0.1, 0.8, 0.1},
	{0.1, 0.1, 0.8},
	{0.4, 0.4, 0.2},
	{0.1, 0.8, 0.1},
}

func testCorpus(t *testing.T) *catalog.Corpus {
	t.Helper()
	recs := make([]catalog.Record, len(testProbs))
	for i := range recs {
		recs[i] = catalog.Record{
			Title:       "exhibit " + string(rune('A'+i)),
			URL:         "https://example.org/" + string(rune('a'+i)),
			Authors:     []string{"author"},
			Description: strings.Repeat("ж", 100*(i+1)),
		}
	}
	c, err := catalog.New(recs)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func testIndex(t *testing.T) *index.Flat {
	t.Helper()
	f, err := index.New(3, vector.NormalizeRows(testProbs))
	if err != nil {
		t.Fatalf("index.New: %v", err)
	}
	return f
}

func newService(t *testing.T, model *mockModel) *Service {
	t.Helper()
	return New(testCorpus(t), testIndex(t), model, "terms", 0)
}

func mustRequest(t *testing.T, q string, k int) *request.Request {
	t.Helper()
	r, err := request.New(q, k)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

// --- Tests ---

func TestSearch_StoredRowRanksFirst(t *testing.T) {
	model := &mockModel{topics: 3, out: testProbs[2]}
	svc := newService(t, model)

	got, err := svc.Search(context.Background(), mustRequest(t, "портрет", 3))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Row() != 2 || got[0].Distance() > 1e-6 {
		t.Errorf("first hit row=%d distance=%f, want row 2 at ~0", got[0].Row(), got[0].Distance())
	}
	if got[0].Name() != "exhibit C" || got[0].URL() != "https://example.org/c" {
		t.Errorf("unexpected join: %q %q", got[0].Name(), got[0].URL())
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance() < got[i-1].Distance() {
			t.Errorf("distances not non-decreasing: %f after %f", got[i].Distance(), got[i-1].Distance())
		}
	}
	if model.got != "портрет" {
		t.Errorf("model received %q", model.got)
	}
}

func TestSearch_DefaultTopK(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, out: []float64{1, 0, 0}})
	got, err := svc.Search(context.Background(), mustRequest(t, "q", 0))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != request.DefaultTopK {
		t.Errorf("len = %d, want %d", len(got), request.DefaultTopK)
	}
}

func TestSearch_TopKLargerThanCorpus(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, out: []float64{1, 0, 0}})
	got, err := svc.Search(context.Background(), mustRequest(t, "q", 50))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != len(testProbs) {
		t.Errorf("len = %d, want %d", len(got), len(testProbs))
	}
}

func TestSearch_TiesByRow(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, out: testProbs[1]})
	got, err := svc.Search(context.Background(), mustRequest(t, "q", 2))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got[0].Row() != 1 || got[1].Row() != 4 {
		t.Errorf("expected rows 1, 4 for identical vectors, got %d, %d", got[0].Row(), got[1].Row())
	}
}

func TestSearch_UnnormalizedModelOutput(t *testing.T) {
	scaled := make([]float64, 3)
	for i, x := range testProbs[0] {
		scaled[i] = x * 7
	}
	svc := newService(t, &mockModel{topics: 3, out: scaled})
	got, err := svc.Search(context.Background(), mustRequest(t, "q", 1))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got[0].Row() != 0 || math.Abs(got[0].Distance()) > 1e-6 {
		t.Errorf("expected row 0 at distance 0, got row %d at %f", got[0].Row(), got[0].Distance())
	}
}

func TestSearch_DescriptionTruncated(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, out: []float64{1, 1, 1}})
	got, err := svc.Search(context.Background(), mustRequest(t, "q", 5))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range got {
		want := 100 * (r.Row() + 1)
		if want > 200 {
			want = 200
		}
		if n := utf8.RuneCountInString(r.Description()); n != want {
			t.Errorf("row %d description has %d chars, want %d", r.Row(), n, want)
		}
	}
}

func TestSearch_InferenceError(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, err: errors.New("model exploded")})
	_, err := svc.Search(context.Background(), mustRequest(t, "q", 3))
	if !errors.Is(err, domain.ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	svc := newService(t, &mockModel{topics: 2, out: []float64{0.5, 0.5}})
	_, err := svc.Search(context.Background(), mustRequest(t, "q", 3))
	if !errors.Is(err, domain.ErrInference) {
		t.Fatalf("expected ErrInference, got %v", err)
	}
}

func TestSearch_ZeroDistributionStillAnswers(t *testing.T) {
	svc := newService(t, &mockModel{topics: 3, out: []float64{0, 0, 0}})
	got, err := svc.Search(context.Background(), mustRequest(t, "", 3))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d", len(got))
	}
}
