// Package similarity computes pairwise cosine similarity between feature vectors.
package similarity

import "fmt"

// Matrix is a dense symmetric N x N similarity matrix.
// Only the upper triangle is stored, so At(i, j) == At(j, i) always holds.
type Matrix struct {
	n    int
	data []float64
}

// newMatrix allocates an n x n zero matrix.
func newMatrix(n int) *Matrix {
	return &Matrix{
		n:    n,
		data: make([]float64, n*(n+1)/2),
	}
}

// Size returns N.
func (m *Matrix) Size() int {
	return m.n
}

// offset returns the position of (i, j) in data. Requires i <= j.
func (m *Matrix) offset(i, j int) int {
	return i*m.n - i*(i-1)/2 + (j - i)
}

// At returns the similarity between vectors i and j.
// It panics if either index is out of range.
func (m *Matrix) At(i, j int) float64 {
	m.check(i)
	m.check(j)
	if i > j {
		i, j = j, i
	}
	return m.data[m.offset(i, j)]
}

// set stores v at (i, j). Requires i <= j.
func (m *Matrix) set(i, j int, v float64) {
	m.data[m.offset(i, j)] = v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	m.check(i)
	row := make([]float64, m.n)
	for j := 0; j < i; j++ {
		row[j] = m.data[m.offset(j, i)]
	}
	copy(row[i:], m.data[m.offset(i, i):m.offset(i, i)+m.n-i])
	return row
}

func (m *Matrix) check(i int) {
	if i < 0 || i >= m.n {
		panic(fmt.Sprintf("similarity: index %d out of range [0,%d)", i, m.n))
	}
}
