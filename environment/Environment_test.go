package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samuelfneumann/mmlearn/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)
	assert.Equal(t, 3, limit.Steps())

	for n := 1; n < 3; n++ {
		step := timestep.New(timestep.Mid, 0, 1, 0, n, 0, 0)
		assert.False(t, limit.End(&step))
		assert.True(t, step.Mid())
	}

	step := timestep.New(timestep.Mid, 0, 1, 0, 3, 0, 0)
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
}

func TestSpec(t *testing.T) {
	s := NewSpec(9, Action)
	assert.Equal(t, Discrete, s.Cardinality)
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(8))
	assert.False(t, s.Contains(9))
	assert.False(t, s.Contains(-1))

	assert.Panics(t, func() { NewSpec(0, Observation) })
}
