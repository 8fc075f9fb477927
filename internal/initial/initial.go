package initial

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Params is a starting guess for an EM run: uniform mixing weights,
// component means drawn uniformly from a symmetric box, and identity
// covariance matrices.
type Params struct {
	Weights []float64
	Means   [][]float64
	Covs    []*mat.SymDense
}

// Draw produces initial parameters for k components in dim dimensions.
// Means are drawn from [-span, span] per coordinate using src, so an
// identical source yields identical parameters.
func Draw(k, dim int, span float64, src *rand.Rand) Params {
	p := Params{
		Weights: make([]float64, k),
		Means:   make([][]float64, k),
		Covs:    make([]*mat.SymDense, k),
	}
	for c := range k {
		p.Weights[c] = 1 / float64(k)
		p.Means[c] = make([]float64, dim)
		for j := range dim {
			p.Means[c][j] = span * (2*src.Float64() - 1)
		}
		p.Covs[c] = identity(dim)
	}
	return p
}

func identity(dim int) *mat.SymDense {
	m := mat.NewSymDense(dim, nil)
	for i := range dim {
		m.SetSym(i, i, 1)
	}
	return m
}
