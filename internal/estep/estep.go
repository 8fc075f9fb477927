package estep

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/AliAssareh/GaussianMixtureModels/internal/mvnorm"
)

// Result holds the output of one expectation pass.
type Result struct {
	// Resp is the N×K responsibility matrix. Row i holds the posterior
	// probability of each component given point i and sums to 1.
	Resp *mat.Dense
	// Counts is the effective number of points per component, the
	// column sums of Resp.
	Counts []float64
	// Weights is the refreshed mixing-weight vector, Counts/N.
	Weights []float64
	// Underflows counts rows whose every component density underflowed
	// and had to be floored to a flat row.
	Underflows int
}

// Run computes posterior responsibilities for every point under the
// current mixture. Per-component weights are combined with the
// log-densities and each row is normalized with log-sum-exp, so rows
// stay well defined even when every plain density is far below the
// smallest representable float.
//
// Rows are independent, so the pass fans out across GOMAXPROCS workers
// and combines per-worker count vectors after the join.
func Run(data *mat.Dense, weights []float64, dists []*mvnorm.Dist) Result {
	n, dim := data.Dims()
	k := len(weights)
	resp := mat.NewDense(n, k, nil)

	logW := make([]float64, k)
	for j, w := range weights {
		logW[j] = math.Log(w)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	partCounts := make([][]float64, workers)
	partUnder := make([]int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func(w int) {
			defer wg.Done()
			counts := make([]float64, k)
			scratch := mvnorm.NewScratch(dim)
			lo := w * chunk
			hi := min(lo+chunk, n)
			for i := lo; i < hi; i++ {
				row := resp.RawRowView(i)
				x := data.RawRowView(i)
				for j, d := range dists {
					row[j] = logW[j] + d.LogProbWith(scratch, x)
				}
				lse := floats.LogSumExp(row)
				if math.IsInf(lse, -1) {
					// Every density underflowed; the normalized row is
					// 0/0. Floor to a flat row instead.
					partUnder[w]++
					for j := range row {
						row[j] = 1 / float64(k)
					}
				} else {
					for j := range row {
						row[j] = math.Exp(row[j] - lse)
					}
				}
				floats.Add(counts, row)
			}
			partCounts[w] = counts
		}(w)
	}
	wg.Wait()

	counts := make([]float64, k)
	for _, pc := range partCounts {
		floats.Add(counts, pc)
	}
	newWeights := make([]float64, k)
	under := 0
	for j := range newWeights {
		newWeights[j] = counts[j] / float64(n)
	}
	for _, u := range partUnder {
		under += u
	}
	return Result{Resp: resp, Counts: counts, Weights: newWeights, Underflows: under}
}
