// Command fitdemo samples a synthetic 2-D Gaussian mixture, fits it
// back with EM, and plots the AIC trajectory of the fit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	gmm "github.com/AliAssareh/GaussianMixtureModels"
)

func main() {
	var (
		nSamples   = flag.Int("n", 5000, "number of points to sample")
		components = flag.Int("k", 3, "number of mixture components to fit")
		seed       = flag.Uint64("seed", 1, "seed for sampling and initialization")
		maxIter    = flag.Int("maxiter", 200, "iteration budget")
		timeout    = flag.Duration("timeout", time.Minute, "overall fitting timeout")
	)
	flag.Parse()

	data := sample(*nSamples, *seed)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	result, err := gmm.Fit(ctx, data, *components,
		gmm.WithSeed(*seed),
		gmm.WithMaxIterations(*maxIter),
		gmm.WithInitSpan(10),
		gmm.WithObserver(10, func(s gmm.Snapshot) {
			log.Printf("iteration %d: aic=%.2f", s.Iter, s.AIC)
		}),
	)
	if err != nil {
		log.Fatalf("fit: %v (status %v after %d iterations)", err, result.Status, result.Iterations)
	}

	fmt.Printf("status: %v after %d iterations\n\n", result.Status, result.Iterations)
	for i, c := range result.Mixture.Components {
		fmt.Printf("component %d\n", i)
		fmt.Printf("  weight: %.3f\n", c.Weight)
		fmt.Printf("  mean:   %.3v\n", mat.Formatted(mat.NewVecDense(2, c.Mean).T()))
		fmt.Printf("  sigma:  %.3v\n", mat.Formatted(c.Cov, mat.Prefix("          ")))
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(result.AICs,
		asciigraph.Height(12),
		asciigraph.Caption("AIC per iteration"),
	))
}

// sample draws points from a fixed three-component truth mixture, the
// kind of cloud the fitter is meant to recover.
func sample(n int, seed uint64) *mat.Dense {
	src := rand.NewPCG(seed, seed)
	truth := []struct {
		weight float64
		mean   []float64
		sigma  []float64
	}{
		{weight: 0.5, mean: []float64{4, 5}, sigma: []float64{1, 0.1, 0.1, 2}},
		{weight: 0.3, mean: []float64{-4, -5}, sigma: []float64{2, 0.2, 0.2, 0.5}},
		{weight: 0.2, mean: []float64{-6, 6}, sigma: []float64{0.5, -0.2, -0.2, 0.4}},
	}

	weights := make([]float64, len(truth))
	normals := make([]*distmv.Normal, len(truth))
	for i, c := range truth {
		weights[i] = c.weight
		normal, ok := distmv.NewNormal(c.mean, mat.NewSymDense(2, c.sigma), src)
		if !ok {
			log.Fatalf("truth component %d is not positive definite", i)
		}
		normals[i] = normal
	}
	cat := distuv.NewCategorical(weights, src)

	data := mat.NewDense(n, 2, nil)
	for i := range n {
		normals[int(cat.Rand())].Rand(data.RawRowView(i))
	}
	return data
}
