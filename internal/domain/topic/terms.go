package topic

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/museum-search/internal/domain"
)

// TermModel infers topics from the query's TF-IDF vector and per-topic term weights.
type TermModel struct {
	artifact *Artifact
	norms    []float64
}

// NewTermModel wraps a validated artifact.
func NewTermModel(a *Artifact) (*TermModel, error) {
	if err := a.Validate(InferenceTerms); err != nil {
		return nil, err
	}
	norms := make([]float64, len(a.Topics))
	for i, t := range a.Topics {
		var s float64
		for _, term := range sortedTerms(t.Terms) {
			w := t.Terms[term]
			s += w * w
		}
		norms[i] = math.Sqrt(s)
	}
	return &TermModel{artifact: a, norms: norms}, nil
}

// NumTopics returns the number of topics.
func (m *TermModel) NumTopics() int { return m.artifact.NumTopics() }

// DocumentProbabilities returns the training-time document distributions.
func (m *TermModel) DocumentProbabilities() [][]float64 { return m.artifact.DocumentProbabilities() }

// Transform scores text against every topic with cosine similarity and normalizes the
// scores to sum to one. Text without known terms gets the uniform distribution.
func (m *TermModel) Transform(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInference, err)
	}

	q := m.weigh(Tokenize(text))
	n := m.NumTopics()
	if len(q) == 0 {
		return Uniform(n), nil
	}
	var qnorm float64
	for _, tw := range q {
		qnorm += tw.weight * tw.weight
	}
	qnorm = math.Sqrt(qnorm)

	out := make([]float64, n)
	var total float64
	for i, t := range m.artifact.Topics {
		if m.norms[i] == 0 {
			continue
		}
		var dot float64
		for _, tw := range q {
			dot += tw.weight * t.Terms[tw.term]
		}
		s := dot / (qnorm * m.norms[i])
		if s < 0 || math.IsNaN(s) {
			s = 0
		}
		out[i] = s
		total += s
	}
	if total == 0 {
		return Uniform(n), nil
	}
	for i := range out {
		out[i] /= total
	}
	return out, nil
}

type termWeight struct {
	term   string
	weight float64
}

// weigh returns the TF-IDF weights of tokens ordered by term, so sums over them are
// reproducible. Tokens missing from the IDF table are dropped; without an IDF table
// every known topic term weighs 1.
func (m *TermModel) weigh(tokens []string) []termWeight {
	counts := make(map[string]int, len(tokens))
	total := 0
	for _, tok := range tokens {
		if !m.known(tok) {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 {
		return nil
	}
	out := make([]termWeight, 0, len(counts))
	for _, tok := range sortedTerms(counts) {
		idf := 1.0
		if m.artifact.IDF != nil {
			idf = m.artifact.IDF[tok]
		}
		out = append(out, termWeight{term: tok, weight: float64(counts[tok]) / float64(total) * idf})
	}
	return out
}

func sortedTerms[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *TermModel) known(tok string) bool {
	if m.artifact.IDF != nil {
		_, ok := m.artifact.IDF[tok]
		return ok
	}
	for _, t := range m.artifact.Topics {
		if _, ok := t.Terms[tok]; ok {
			return true
		}
	}
	return false
}
