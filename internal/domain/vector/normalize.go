// Package vector holds the one normalization routine shared by index building and querying.
package vector

import "math"

// Normalize returns v scaled to unit L2 norm. The sum of squares is accumulated in float64
// in index order. A zero vector is returned as zeros.
func Normalize(v []float64) []float32 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(x / norm)
	}
	return out
}

// NormalizeRows applies Normalize to every row, preserving order.
func NormalizeRows(rows [][]float64) [][]float32 {
	out := make([][]float32, len(rows))
	for i, r := range rows {
		out[i] = Normalize(r)
	}
	return out
}

// FromFloat32 widens v to float64.
func FromFloat32(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// SquaredL2 returns the squared Euclidean distance between a and b, accumulated in float64.
// Vectors must have equal length.
func SquaredL2(a, b []float32) float64 {
	var d float64
	for i := range a {
		x := float64(a[i]) - float64(b[i])
		d += x * x
	}
	return d
}

// Cosine returns the cosine similarity of a and b, or 0 if either has zero norm.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
