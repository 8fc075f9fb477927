package initial

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraw(t *testing.T) {
	const (
		k    = 4
		dim  = 2
		span = 2.0
	)
	p := Draw(k, dim, span, rand.New(rand.NewPCG(1, 1)))
	require.Len(t, p.Weights, k)
	require.Len(t, p.Means, k)
	require.Len(t, p.Covs, k)

	for c := range k {
		assert.Equal(t, 1/float64(k), p.Weights[c])
		require.Len(t, p.Means[c], dim)
		for j := range dim {
			assert.LessOrEqual(t, p.Means[c][j], span)
			assert.GreaterOrEqual(t, p.Means[c][j], -span)
		}
		for i := range dim {
			for j := range dim {
				want := 0.0
				if i == j {
					want = 1.0
				}
				assert.Equal(t, want, p.Covs[c].At(i, j))
			}
		}
	}
}

func TestDraw_Deterministic(t *testing.T) {
	a := Draw(3, 2, 2, rand.New(rand.NewPCG(42, 42)))
	b := Draw(3, 2, 2, rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, a.Means, b.Means)

	c := Draw(3, 2, 2, rand.New(rand.NewPCG(43, 43)))
	assert.NotEqual(t, a.Means, c.Means)
}
