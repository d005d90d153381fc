package similarity

import (
	"context"
	"runtime"
	"sort"

	"github.com/raphaelgruber/movierec/internal/embedding"
	"golang.org/x/sync/errgroup"
)

// posting is one non-zero entry of a feature column.
type posting struct {
	row   int
	value float64
}

// Cosine computes the full cosine similarity matrix of vectors.
//
// Entry (i, j) is dot(i, j) / (|i| |j|), clamped to [-1, 1]. Any pair that
// involves a zero vector is 0, including the diagonal entry of a zero vector;
// every other diagonal entry is exactly 1.
//
// Dot products are accumulated through an inverted index over features, so
// pairs that share no feature cost nothing. Rows are spread over
// GOMAXPROCS workers; each row of the upper triangle is written by one worker.
func Cosine(ctx context.Context, vectors []embedding.SparseVector) (*Matrix, error) {
	n := len(vectors)
	m := newMatrix(n)
	if n == 0 {
		return m, nil
	}

	norms := make([]float64, n)
	postings := make(map[int][]posting)
	for i, v := range vectors {
		norms[i] = v.Norm()
		for k, idx := range v.Indices {
			if v.Values[k] == 0 {
				continue
			}
			postings[idx] = append(postings[idx], posting{row: i, value: v.Values[k]})
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			acc := make([]float64, n)
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				fillRow(m, i, vectors[i], norms, postings, acc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// fillRow writes the upper-triangle part of row i into m.
// acc is scratch space of length n.
func fillRow(m *Matrix, i int, v embedding.SparseVector, norms []float64, postings map[int][]posting, acc []float64) {
	n := m.n
	for j := i; j < n; j++ {
		acc[j] = 0
	}

	for k, idx := range v.Indices {
		x := v.Values[k]
		if x == 0 {
			continue
		}
		list := postings[idx]
		start := sort.Search(len(list), func(p int) bool { return list[p].row >= i })
		for _, p := range list[start:] {
			acc[p.row] += x * p.value
		}
	}

	if norms[i] == 0 {
		// Row already zero from allocation.
		return
	}
	m.set(i, i, 1)
	for j := i + 1; j < n; j++ {
		if acc[j] == 0 || norms[j] == 0 {
			continue
		}
		m.set(i, j, clamp(acc[j]/(norms[i]*norms[j])))
	}
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// Pair returns the cosine similarity of two vectors without building a matrix.
func Pair(a, b embedding.SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(a.Dot(b) / (na * nb))
}
