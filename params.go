package gmm

import "gonum.org/v1/gonum/mat"

// Component is one Gaussian of a mixture.
type Component struct {
	// Weight is the mixing weight, in (0,1]. Weights of a Mixture sum to 1.
	Weight float64
	// Mean is the location vector.
	Mean []float64
	// Cov is the symmetric positive-definite covariance matrix.
	Cov *mat.SymDense
}

// Mixture is an immutable snapshot of mixture parameters. Each
// iteration of a fit produces a fresh snapshot; earlier ones stay valid.
type Mixture struct {
	Components []Component
}

// Clone returns a deep copy of the mixture.
func (m Mixture) Clone() Mixture {
	out := Mixture{Components: make([]Component, len(m.Components))}
	for i, c := range m.Components {
		mean := make([]float64, len(c.Mean))
		copy(mean, c.Mean)
		cov := mat.NewSymDense(c.Cov.SymmetricDim(), nil)
		cov.CopySym(c.Cov)
		out.Components[i] = Component{Weight: c.Weight, Mean: mean, Cov: cov}
	}
	return out
}

// Snapshot is the read-only per-iteration state delivered to an
// observer registered with WithObserver.
type Snapshot struct {
	Iter    int
	AIC     float64
	Mixture Mixture
}

// Status is the terminal state of a fit.
type Status int

const (
	// StatusRunning is the non-terminal state. A Result returned
	// together with an error keeps it, as the fit stopped before
	// reaching a terminal state.
	StatusRunning Status = iota
	// StatusConverged means the AIC improvement stayed below the
	// threshold for the configured patience.
	StatusConverged
	// StatusExhausted means the iteration budget ran out, or the
	// context was cancelled, before the stopping rule fired. Not a
	// fault; callers may extend the budget and fit again.
	StatusExhausted
	// StatusDiverged means the AIC rose on every one of the patience
	// iterations that triggered the stop, so the fit was getting worse,
	// not settling.
	StatusDiverged
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "exhausted"
	case StatusDiverged:
		return "diverged"
	}
	return "unknown"
}

// Result is the outcome of a fit.
type Result struct {
	Status  Status
	Mixture Mixture
	// AICs holds one AIC value per executed iteration, in order.
	AICs []float64
	// Iterations is the number of iterations executed, len(AICs).
	Iterations int
	// Underflows counts density evaluations that had to be floored
	// because every component underflowed. The AIC values are suspect
	// when it is nonzero.
	Underflows int
}
