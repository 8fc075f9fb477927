// Package gmm fits Gaussian mixture models to point clouds with the
// expectation-maximization algorithm, scoring each iteration with the
// Akaike Information Criterion and stopping once improvement plateaus.
package gmm

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Fit fits a mixture of the given number of components to the data with
// the specified options. This is a convenience function that creates a
// Model and calls its Fit method.
func Fit(ctx context.Context, data mat.Matrix, components int, opts ...Option) (Result, error) {
	m, err := New(components, opts...)
	if err != nil {
		return Result{}, err
	}
	return m.Fit(ctx, data)
}

// Model holds the configuration of a fit. A Model is reusable: each
// call to Fit owns its own session state.
type Model struct {
	components     int
	maxIter        int
	threshold      float64
	patience       int
	seed           uint64
	initSpan       float64
	regularization float64
	initial        *Mixture
	stride         int
	observer       func(Snapshot)
}

// New initializes a fitting model for the given number of components.
// Iteration budget, stopping threshold, patience and initialization can
// be optionally specified. For default values, refer to the init
// function.
func New(components int, opts ...Option) (*Model, error) {
	m := &Model{components: components}
	if err := m.init(opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Fit runs EM on the data until the stopping rule fires, the iteration
// budget runs out, or ctx is cancelled.
//
// Process, per iteration:
//  1. Computes posterior responsibilities of every component for every
//     point and refreshes the mixing weights (expectation step).
//  2. Recomputes means and covariances from the responsibilities
//     (maximization step).
//  3. Scores the new parameters with the AIC and appends it to the
//     trajectory.
//  4. Applies the plateau stopping rule against the previous AIC.
//
// The data is borrowed for the duration of the call and never modified.
// Cancellation between iterations returns the trajectory gathered so
// far with StatusExhausted and the context's error. Numerical
// degeneracy returns the last valid parameters together with an error
// wrapping ErrDegenerate.
func (m *Model) Fit(ctx context.Context, data mat.Matrix) (Result, error) {
	n, dim := data.Dims()
	if n == 0 {
		return Result{}, ErrEmptySet
	}
	if dim < 1 {
		return Result{}, ErrDimension
	}
	s, err := m.newSession(data)
	if err != nil {
		return Result{}, err
	}
	return s.run(ctx)
}

func (m *Model) init(opts ...Option) error {
	if m.components < 1 {
		return ErrComponents
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return err
		}
	}
	if m.maxIter == 0 {
		m.maxIter = 100
	}
	if m.threshold == 0 {
		m.threshold = 1e-4
	}
	if m.patience == 0 {
		m.patience = 3
	}
	if m.initSpan == 0 {
		m.initSpan = 2
	}
	if m.stride == 0 {
		m.stride = 1
	}
	return nil
}
