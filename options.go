package gmm

type Option func(*Model) error

// WithMaxIterations caps the number of EM iterations. A fit that
// reaches the cap without converging ends with StatusExhausted.
func WithMaxIterations(n int) Option {
	return func(m *Model) error {
		if n < 1 {
			return ErrZeroIterations
		}
		m.maxIter = n
		return nil
	}
}

// WithThreshold sets the minimum AIC improvement between consecutive
// iterations that still counts as progress.
func WithThreshold(theta float64) Option {
	return func(m *Model) error {
		if theta <= 0 {
			return ErrThreshold
		}
		m.threshold = theta
		return nil
	}
}

// WithPatience sets how many consecutive sub-threshold improvements are
// tolerated before the fit stops.
func WithPatience(p int) Option {
	return func(m *Model) error {
		if p < 1 {
			return ErrPatience
		}
		m.patience = p
		return nil
	}
}

// WithSeed seeds the pseudorandom source used to draw initial component
// means. Identical seeds yield identical fits.
func WithSeed(seed uint64) Option {
	return func(m *Model) error {
		m.seed = seed
		return nil
	}
}

// WithInitSpan sets the half-width of the symmetric box initial means
// are drawn from, [-span, span] per coordinate.
func WithInitSpan(span float64) Option {
	return func(m *Model) error {
		if span <= 0 {
			return ErrInitSpan
		}
		m.initSpan = span
		return nil
	}
}

// WithRegularization adds lambda to the diagonal of every covariance
// after each maximization step. This keeps near-singular covariances
// invertible but biases the estimates toward sphericity, so it is off
// by default.
func WithRegularization(lambda float64) Option {
	return func(m *Model) error {
		if lambda < 0 {
			return ErrRegularization
		}
		m.regularization = lambda
		return nil
	}
}

// WithInitialMixture supplies the starting parameters instead of
// drawing them randomly. The mixture must have as many components as
// the model, all of the same dimensionality as the data.
func WithInitialMixture(mix Mixture) Option {
	return func(m *Model) error {
		m.initial = &mix
		return nil
	}
}

// WithObserver registers fn to receive a read-only Snapshot on every
// stride-th iteration and on the final one. The callback runs between
// iterations on the fitting goroutine; the fit never waits on anything
// it does.
func WithObserver(stride int, fn func(Snapshot)) Option {
	return func(m *Model) error {
		if stride < 1 {
			stride = 1
		}
		m.stride = stride
		m.observer = fn
		return nil
	}
}
