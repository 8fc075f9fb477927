package gmm

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/AliAssareh/GaussianMixtureModels/internal/estep"
	"github.com/AliAssareh/GaussianMixtureModels/internal/initial"
	"github.com/AliAssareh/GaussianMixtureModels/internal/mstep"
	"github.com/AliAssareh/GaussianMixtureModels/internal/mvnorm"
	"github.com/AliAssareh/GaussianMixtureModels/internal/score"
)

// session owns all mutable state of one fit: the current parameters,
// the factorized densities, the AIC trajectory, and the stopping-rule
// counters. A fresh session is created per Fit call, so a Model can be
// shared.
type session struct {
	model *Model
	data  *mat.Dense

	weights []float64
	means   [][]float64
	covs    []*mat.SymDense
	dists   []*mvnorm.Dist

	aics       []float64
	underflows int

	prevAIC float64
	flat    int // consecutive sub-threshold improvements
	rising  int // consecutive AIC increases

	lastEmitted int
}

func (m *Model) newSession(data mat.Matrix) (*session, error) {
	d, ok := data.(*mat.Dense)
	if !ok {
		d = mat.DenseCopyOf(data)
	}
	s := &session{
		model:       m,
		data:        d,
		prevAIC:     math.Inf(1),
		lastEmitted: -1,
	}
	_, dim := d.Dims()
	if m.initial != nil {
		if err := s.adoptInitial(*m.initial, dim); err != nil {
			return nil, err
		}
		return s, nil
	}
	src := rand.New(rand.NewPCG(m.seed, m.seed))
	p := initial.Draw(m.components, dim, m.initSpan, src)
	s.weights, s.means, s.covs = p.Weights, p.Means, p.Covs
	return s, nil
}

func (s *session) adoptInitial(mix Mixture, dim int) error {
	if len(mix.Components) != s.model.components {
		return ErrInitialShape
	}
	mix = mix.Clone()
	s.weights = make([]float64, len(mix.Components))
	s.means = make([][]float64, len(mix.Components))
	s.covs = make([]*mat.SymDense, len(mix.Components))
	for i, c := range mix.Components {
		if len(c.Mean) != dim || c.Cov.SymmetricDim() != dim {
			return ErrInitialShape
		}
		s.weights[i] = c.Weight
		s.means[i] = c.Mean
		s.covs[i] = c.Cov
	}
	return nil
}

func (s *session) run(ctx context.Context) (Result, error) {
	if err := s.factorize(s.means, s.covs); err != nil {
		return s.result(StatusRunning), fmt.Errorf("%w:%w", ErrDegenerate, err)
	}
	var aic float64
	for i := range s.model.maxIter {
		select {
		case <-ctx.Done():
			return s.result(StatusExhausted), ctx.Err()
		default:
		}

		e := estep.Run(s.data, s.weights, s.dists)
		s.underflows += e.Underflows

		means, covs, err := mstep.Update(s.data, e.Resp, e.Counts, s.model.regularization)
		if err != nil {
			// The pre-step parameters are the last valid ones.
			return s.result(StatusRunning), fmt.Errorf("%w:%w", ErrDegenerate, err)
		}
		if err := s.factorize(means, covs); err != nil {
			return s.result(StatusRunning), fmt.Errorf("%w:%w", ErrDegenerate, err)
		}
		s.weights, s.means, s.covs = e.Weights, means, covs

		var uf int
		aic, uf = score.AIC(s.data, s.weights, s.dists)
		s.underflows += uf
		s.aics = append(s.aics, aic)
		s.emit(i, aic, false)

		if status, done := s.advance(aic); done {
			s.emit(i, aic, true)
			return s.result(status), nil
		}
	}
	if len(s.aics) > 0 {
		s.emit(len(s.aics)-1, aic, true)
	}
	return s.result(StatusExhausted), nil
}

// advance applies the plateau stopping rule to one iteration's AIC.
// An improvement below the threshold bumps the patience counter; once
// it fires, the run is classified as diverged when the AIC also rose on
// every one of those iterations, converged otherwise.
func (s *session) advance(aic float64) (Status, bool) {
	delta := s.prevAIC - aic
	if aic > s.prevAIC {
		s.rising++
	} else {
		s.rising = 0
	}
	if delta < s.model.threshold {
		s.flat++
		if s.flat >= s.model.patience {
			if s.rising >= s.model.patience {
				return StatusDiverged, true
			}
			return StatusConverged, true
		}
	} else {
		s.flat = 0
	}
	s.prevAIC = aic
	return StatusRunning, false
}

// factorize rebuilds the per-component density evaluators, committing
// them only when every covariance admits a Cholesky factorization.
func (s *session) factorize(means [][]float64, covs []*mat.SymDense) error {
	dists := make([]*mvnorm.Dist, len(covs))
	for c := range covs {
		d, err := mvnorm.New(means[c], covs[c])
		if err != nil {
			return fmt.Errorf("component %d: %w", c, err)
		}
		dists[c] = d
	}
	s.dists = dists
	return nil
}

func (s *session) emit(iter int, aic float64, final bool) {
	if s.model.observer == nil {
		return
	}
	if !final && iter%s.model.stride != 0 {
		return
	}
	if s.lastEmitted == iter {
		return
	}
	s.lastEmitted = iter
	s.model.observer(Snapshot{Iter: iter, AIC: aic, Mixture: s.mixture()})
}

func (s *session) mixture() Mixture {
	mix := Mixture{Components: make([]Component, len(s.weights))}
	for c := range s.weights {
		mix.Components[c] = Component{Weight: s.weights[c], Mean: s.means[c], Cov: s.covs[c]}
	}
	return mix.Clone()
}

func (s *session) result(status Status) Result {
	return Result{
		Status:     status,
		Mixture:    s.mixture(),
		AICs:       s.aics,
		Iterations: len(s.aics),
		Underflows: s.underflows,
	}
}
