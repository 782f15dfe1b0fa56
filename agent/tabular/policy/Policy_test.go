package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/timestep"
)

func TestEGreedyProbabilities(t *testing.T) {
	table := tabular.NewTable(9)
	table.Set(3, 5, 1.0)
	p := NewEGreedy(0.1, table, rand.NewSource(1))

	probs := p.Probabilities(3)
	require.Len(t, probs, 9)
	assert.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
	for a, prob := range probs {
		if a == 5 {
			assert.InDelta(t, 1-0.1+0.1/9, prob, 1e-12)
		} else {
			assert.InDelta(t, 0.1/9, prob, 1e-12)
		}
	}
}

func TestEGreedyUnseenState(t *testing.T) {
	table := tabular.NewTable(4)
	p := NewEGreedy(0.2, table, rand.NewSource(1))

	probs := p.Probabilities(42)
	assert.InDelta(t, 0.85, probs[0], 1e-12)
	assert.InDelta(t, 0.05, probs[3], 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, table.Row(42))
}

func TestEGreedySelectAction(t *testing.T) {
	table := tabular.NewTable(9)
	table.Set(0, 7, 2.0)
	step := timestep.New(timestep.First, 0, 1, 0, 0, 0, 0)

	greedy := NewEGreedy(0, table, rand.NewSource(3))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 7, greedy.SelectAction(step))
	}

	explore := NewEGreedy(1, table, rand.NewSource(3))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		a := explore.SelectAction(step)
		require.True(t, a >= 0 && a < 9)
		seen[a] = true
	}
	assert.Len(t, seen, 9)

	assert.Panics(t, func() { NewEGreedy(1.5, table, nil) })
}

func TestGreedy(t *testing.T) {
	table := tabular.NewTable(3)
	table.Set(1, 2, 0.5)
	g := NewGreedy(table)

	assert.Equal(t, 2, g.SelectAction(timestep.TimeStep{Observation: 1}))
	assert.Equal(t, 0, g.SelectAction(timestep.TimeStep{Observation: 2}))
}

func TestFixedPolicies(t *testing.T) {
	c := NewConstant(0)
	assert.Equal(t, 0, c.SelectAction(timestep.TimeStep{Observation: 5}))

	u := NewUniform(9, rand.NewSource(8))
	counts := make([]int, 9)
	for i := 0; i < 9000; i++ {
		counts[u.SelectAction(timestep.TimeStep{})]++
	}
	for _, count := range counts {
		assert.InDelta(t, 1000, count, 200)
	}
}
