package gmm

import "errors"

var (
	ErrEmptySet       = errors.New("empty training set")
	ErrComponents     = errors.New("number of components cannot be less than 1")
	ErrDimension      = errors.New("dimensionality cannot be less than 1")
	ErrZeroIterations = errors.New("number of iterations cannot be less than 1")
	ErrThreshold      = errors.New("improvement threshold must be positive")
	ErrPatience       = errors.New("patience cannot be less than 1")
	ErrInitSpan       = errors.New("initialization span must be positive")
	ErrRegularization = errors.New("regularization cannot be negative")
	ErrInitialShape   = errors.New("initial mixture does not match the configured shape")

	// ErrDegenerate reports numerical degeneracy: a collapsed component
	// or a covariance matrix that is no longer positive definite. The
	// Result returned alongside it retains the last valid parameters
	// and the trajectory gathered so far.
	ErrDegenerate = errors.New("numerical degeneracy")
)
