package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table        *tabular.Table
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
	observed     bool
}

// NewQLearner creates a new QLearner struct which updates the action
// values in table. Transitions are discounted by the discount of the
// environment's next timestep.
func NewQLearner(table *tabular.Table, learningRate float64) *QLearner {
	return &QLearner{
		table:        table,
		learningRate: learningRate,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"timestep of an episode", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearner) Observe(action int, nextStep timestep.TimeStep) error {
	if action < 0 || action >= q.table.Actions() {
		return fmt.Errorf("observe: illegal action %d", action)
	}
	q.step = q.nextStep
	q.action = action
	q.nextStep = nextStep
	q.observed = true
	return nil
}

// Step updates the action value of the last observed transition:
//
//	Q(s, a) ← Q(s, a) + α (r + γ max_a' Q(s', a') - Q(s, a))
//
// where γ is the discount of the next timestep. The target bootstraps
// from the greedy value of the next state, independently of the action
// the behaviour policy takes next.
func (q *QLearner) Step() error {
	if !q.observed {
		return fmt.Errorf("step: no transition observed")
	}
	q.table.Row(q.step.Observation)[q.action] += q.learningRate *
		q.TdError()
	q.observed = false
	return nil
}

// TdError returns the TD error of the last observed transition
func (q *QLearner) TdError() float64 {
	state := q.step.Observation
	nextState := q.nextStep.Observation

	discount := q.nextStep.Discount
	target := q.nextStep.Reward + discount*q.table.Max(nextState)
	return target - q.table.At(state, q.action)
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {
	q.observed = false
}
