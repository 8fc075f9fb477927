package gmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuleSession(threshold float64, patience int) *session {
	return &session{
		model:   &Model{threshold: threshold, patience: patience},
		prevAIC: math.Inf(1),
	}
}

// feed pushes a trajectory through the stopping rule and returns the
// terminal status, or StatusRunning if the rule never fired.
func feed(s *session, aics []float64) Status {
	for _, aic := range aics {
		if status, done := s.advance(aic); done {
			return status
		}
	}
	return StatusRunning
}

func TestAdvance_StoppingRule(t *testing.T) {
	test := []struct {
		name      string
		threshold float64
		patience  int
		aics      []float64
		exp       Status
	}{
		{
			name:      "plateau_converges",
			threshold: 0.1,
			patience:  3,
			aics:      []float64{100, 50, 49.99, 49.99, 49.99},
			exp:       StatusConverged,
		},
		{
			name:      "monotone_rise_diverges",
			threshold: 0.5,
			patience:  3,
			aics:      []float64{100, 101, 102, 103},
			exp:       StatusDiverged,
		},
		{
			name:      "oscillating_plateau_is_convergence_not_divergence",
			threshold: 0.1,
			patience:  3,
			aics:      []float64{50, 50.01, 50.0, 50.005},
			exp:       StatusConverged,
		},
		{
			name:      "improvement_resets_patience",
			threshold: 0.1,
			patience:  3,
			aics:      []float64{100, 99.99, 99.98, 90, 89.99, 89.98},
			exp:       StatusRunning,
		},
		{
			name:      "first_iteration_never_stops",
			threshold: 1e12,
			patience:  1,
			aics:      []float64{100},
			exp:       StatusRunning,
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			s := newRuleSession(tt.threshold, tt.patience)
			assert.Equal(t, tt.exp, feed(s, tt.aics))
		})
	}
}

func TestAdvance_RisingCounterResetsOnFall(t *testing.T) {
	s := newRuleSession(0.5, 3)
	// Two rises then a fall: the patience counter fires on the third
	// sub-threshold delta with the rise streak already broken.
	status := feed(s, []float64{100, 100.4, 100.8, 100.7})
	require.Equal(t, StatusConverged, status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "converged", StatusConverged.String())
	assert.Equal(t, "exhausted", StatusExhausted.String())
	assert.Equal(t, "diverged", StatusDiverged.String())
	assert.Equal(t, "unknown", Status(99).String())
}
