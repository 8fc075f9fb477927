package mvnorm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrNotPositiveDefinite = errors.New("covariance matrix is not positive definite")

const log2Pi = 1.8378770664093454835606594728112352797227949472755669

// Dist evaluates the log-density of a multivariate normal distribution.
// The covariance matrix is factorized once at construction so that
// repeated evaluations over a dataset pay only a triangular solve each.
//
// The log-density is computed as
//
//	-1/2 * (D*log(2π) + log|Σ| + (x-μ)ᵀ Σ⁻¹ (x-μ))
//
// entirely in log space, which stays finite for points far from the mean
// where the plain density underflows to zero.
//
// A Dist is immutable after construction and safe for concurrent use.
type Dist struct {
	dim    int
	mu     []float64
	chol   mat.Cholesky
	logDet float64
}

// New factorizes sigma and returns a reusable log-density evaluator.
// Returns ErrNotPositiveDefinite when sigma admits no Cholesky
// factorization, which is how a degenerate component surfaces.
func New(mu []float64, sigma *mat.SymDense) (*Dist, error) {
	d := &Dist{
		dim: len(mu),
		mu:  mu,
	}
	if ok := d.chol.Factorize(sigma); !ok {
		return nil, ErrNotPositiveDefinite
	}
	d.logDet = d.chol.LogDet()
	return d, nil
}

// Dim returns the dimensionality of the distribution.
func (d *Dist) Dim() int { return d.dim }

// Mean returns the location vector. The caller must not modify it.
func (d *Dist) Mean() []float64 { return d.mu }

// Scratch is work space for LogProbWith, so inner loops sweeping a
// whole dataset reuse two vectors instead of allocating per point.
// A Scratch must not be shared between goroutines.
type Scratch struct {
	diff, solved *mat.VecDense
}

func NewScratch(dim int) *Scratch {
	return &Scratch{
		diff:   mat.NewVecDense(dim, nil),
		solved: mat.NewVecDense(dim, nil),
	}
}

// LogProb returns the log of the probability density at x.
func (d *Dist) LogProb(x []float64) float64 {
	return d.LogProbWith(NewScratch(d.dim), x)
}

// LogProbWith is LogProb evaluated with caller-owned scratch space.
func (d *Dist) LogProbWith(s *Scratch, x []float64) float64 {
	for i := 0; i < d.dim; i++ {
		s.diff.SetVec(i, x[i]-d.mu[i])
	}
	if err := d.chol.SolveVecTo(s.solved, s.diff); err != nil {
		return math.Inf(-1)
	}
	maha := mat.Dot(s.diff, s.solved)
	return -0.5 * (float64(d.dim)*log2Pi + d.logDet + maha)
}
