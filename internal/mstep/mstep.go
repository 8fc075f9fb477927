package mstep

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrCollapsed = errors.New("component collapsed: no points assigned")

// A component whose effective count drops below this has no meaningful
// mass behind its estimates; dividing by it would only amplify noise.
const minCount = 1e-6

// Update recomputes the mean and covariance of every component from the
// responsibility matrix. For component c with effective count m:
//
//	μ' = Σᵢ r[i,c]·xᵢ / m
//	Σ' = Σᵢ r[i,c]·(xᵢ-μ')(xᵢ-μ')ᵀ / m
//
// The covariance uses the updated mean for every point, which is the
// closed-form likelihood maximizer. When reg > 0 it is added to the
// diagonal of every covariance; this keeps near-singular matrices
// invertible at the cost of a small bias toward sphericity.
//
// Components are updated in parallel. A collapsed component (effective
// count below a small floor) yields an error wrapping ErrCollapsed.
func Update(data, resp *mat.Dense, counts []float64, reg float64) (means [][]float64, covs []*mat.SymDense, err error) {
	n, dim := data.Dims()
	k := len(counts)
	means = make([][]float64, k)
	covs = make([]*mat.SymDense, k)
	errs := make([]error, k)

	var wg sync.WaitGroup
	wg.Add(k)
	for c := range k {
		go func(c int) {
			defer wg.Done()
			if counts[c] < minCount {
				errs[c] = fmt.Errorf("%w: component %d has effective count %g", ErrCollapsed, c, counts[c])
				return
			}
			w := make([]float64, n)
			mat.Col(w, c, resp)

			mu := make([]float64, dim)
			col := make([]float64, n)
			for j := range dim {
				mat.Col(col, j, data)
				mu[j] = stat.Mean(col, w)
			}

			cov := mat.NewSymDense(dim, nil)
			diff := mat.NewVecDense(dim, nil)
			for i := range n {
				x := data.RawRowView(i)
				for j := range dim {
					diff.SetVec(j, x[j]-mu[j])
				}
				cov.SymRankOne(cov, w[i]/counts[c], diff)
			}
			if reg > 0 {
				for j := range dim {
					cov.SetSym(j, j, cov.At(j, j)+reg)
				}
			}
			means[c] = mu
			covs[c] = cov
		}(c)
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, nil, e
		}
	}
	return means, covs, nil
}
