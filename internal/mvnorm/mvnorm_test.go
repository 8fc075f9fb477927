package mvnorm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLogProb(t *testing.T) {
	test := []struct {
		name  string
		mu    []float64
		sigma []float64
		x     []float64
		exp   float64
	}{
		{
			name:  "standard_normal_at_mean",
			mu:    []float64{0, 0},
			sigma: []float64{1, 0, 0, 1},
			x:     []float64{0, 0},
			exp:   -1.8378770664093453,
		},
		{
			name:  "standard_normal_offset",
			mu:    []float64{0, 0},
			sigma: []float64{1, 0, 0, 1},
			x:     []float64{1, 1},
			exp:   -2.8378770664093453,
		},
		{
			name:  "scaled_at_mean",
			mu:    []float64{3, -3},
			sigma: []float64{2, 0, 0, 2},
			x:     []float64{3, -3},
			exp:   -2.531024246969291,
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.mu, mat.NewSymDense(2, tt.sigma))
			require.NoError(t, err)
			assert.InDelta(t, tt.exp, d.LogProb(tt.x), 1e-12)
		})
	}
}

func TestLogProb_FarPointStaysFinite(t *testing.T) {
	d, err := New([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	require.NoError(t, err)

	// Plain density underflows here; the log-density must not.
	lp := d.LogProb([]float64{50, -50})
	assert.False(t, math.IsInf(lp, -1))
	assert.InDelta(t, -1.8378770664093453-2500, lp, 1e-6)
}

func TestLogProbWith_ReusedScratchMatchesLogProb(t *testing.T) {
	d, err := New([]float64{1, -1}, mat.NewSymDense(2, []float64{2, 0.5, 0.5, 1}))
	require.NoError(t, err)

	points := [][]float64{
		{0, 0},
		{1, -1},
		{-3, 4},
		{10, 10},
	}
	scratch := NewScratch(d.Dim())
	for _, x := range points {
		assert.Equal(t, d.LogProb(x), d.LogProbWith(scratch, x), "point %v", x)
	}
}

func TestNew_NotPositiveDefinite(t *testing.T) {
	// Indefinite matrix, det < 0.
	sigma := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err := New([]float64{0, 0}, sigma)
	assert.ErrorIs(t, err, ErrNotPositiveDefinite)
}
