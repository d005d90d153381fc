package embedding

import "math"

// SparseVector is a vector stored as parallel index/value slices.
// Indices are strictly increasing; absent indices are zero.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored (non-zero) entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether every entry is zero.
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean length of v.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of v and w.
func (v SparseVector) Dot(w SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(w.Indices) {
		switch {
		case v.Indices[i] == w.Indices[j]:
			sum += v.Values[i] * w.Values[j]
			i++
			j++
		case v.Indices[i] < w.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Dense expands v into a slice of length dim.
func (v SparseVector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for k, idx := range v.Indices {
		if idx < dim {
			out[idx] = v.Values[k]
		}
	}
	return out
}
