// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in a market environment.
//
// Observation is the discretized state code of the environment after the
// step. Wealth and Inventory expose the agent's book after the step, and
// Fills the number of quotes executed during the step, so that
// statistics can be collected without reaching into the environment.
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation int
	Number      int
	Wealth      float64
	Inventory   int
	Fills       int
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o, n int, wealth float64,
	inventory int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
		Wealth:      wealth,
		Inventory:   inventory,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  State: %d  |  " +
		"Wealth: %.2f  |  Inventory: %d  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Observation, t.Wealth,
		t.Inventory, t.Number)
}
