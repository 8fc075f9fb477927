package score

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/AliAssareh/GaussianMixtureModels/internal/mvnorm"
)

// FreeParams returns the number of free parameters of a k-component
// mixture in dim dimensions: dim per mean, dim(dim+1)/2 per symmetric
// covariance, and one mixing weight per component.
func FreeParams(k, dim int) int {
	return k * (dim + dim*(dim+1)/2 + 1)
}

// AIC computes the Akaike Information Criterion of the mixture against
// the data, 2·FreeParams − 2·lnL. The per-point mixture density is
// evaluated with the same log-sum-exp scheme as the expectation step.
//
// A point under which every component underflows contributes the
// smallest representable log-density instead of −Inf; underflows
// reports how many points needed that floor, as the score is suspect
// when it is nonzero.
func AIC(data *mat.Dense, weights []float64, dists []*mvnorm.Dist) (aic float64, underflows int) {
	n, dim := data.Dims()
	k := len(weights)

	logW := make([]float64, k)
	for j, w := range weights {
		logW[j] = math.Log(w)
	}
	logFloor := math.Log(math.SmallestNonzeroFloat64)

	var logL float64
	row := make([]float64, k)
	scratch := mvnorm.NewScratch(dim)
	for i := range n {
		x := data.RawRowView(i)
		for j, d := range dists {
			row[j] = logW[j] + d.LogProbWith(scratch, x)
		}
		lse := floats.LogSumExp(row)
		if math.IsInf(lse, -1) {
			underflows++
			lse = logFloor
		}
		logL += lse
	}
	return 2*float64(FreeParams(k, dim)) - 2*logL, underflows
}
