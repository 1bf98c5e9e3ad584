// Package index holds the exact Euclidean nearest-neighbor index over topic vectors.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/vector"
)

// Neighbor is one search hit: a row position and its squared L2 distance to the query.
type Neighbor struct {
	Row      int
	Distance float64
}

// Flat is an immutable brute-force index. Rows are addressed by insertion order.
type Flat struct {
	dim  int
	rows [][]float32
}

// New builds an index over rows, all of which must have length dim.
func New(dim int, rows [][]float32) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: index dimension must be positive, got %d", domain.ErrMalformedInput, dim)
	}
	cp := make([][]float32, len(rows))
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("%w: row %d has dimension %d, want %d", domain.ErrMalformedInput, i, len(r), dim)
		}
		for j, x := range r {
			if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
				return nil, fmt.Errorf("%w: row %d component %d is not finite", domain.ErrMalformedInput, i, j)
			}
		}
		cp[i] = append([]float32(nil), r...)
	}
	return &Flat{dim: dim, rows: cp}, nil
}

// Len returns the number of indexed rows.
func (f *Flat) Len() int { return len(f.rows) }

// Dim returns the vector dimension.
func (f *Flat) Dim() int { return f.dim }

// Search returns the k rows closest to query, nearest first. Equal distances are
// ordered by ascending row. k is clamped to Len.
func (f *Flat) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", domain.ErrMalformedInput, len(query), f.dim)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k must not be negative, got %d", domain.ErrInvalidQuery, k)
	}
	if k > len(f.rows) {
		k = len(f.rows)
	}
	if k == 0 {
		return []Neighbor{}, nil
	}

	all := make([]Neighbor, len(f.rows))
	for i, r := range f.rows {
		all[i] = Neighbor{Row: i, Distance: vector.SquaredL2(query, r)}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].Distance != all[b].Distance {
			return all[a].Distance < all[b].Distance
		}
		return all[a].Row < all[b].Row
	})
	return all[:k], nil
}
