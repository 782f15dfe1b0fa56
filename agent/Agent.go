// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/mmlearn/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Step performs a single update to the learner using the last
	// observed transition
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action int, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should share the same action-value table so that
// any changes the Learner makes are reflected in the actions the Policy
// chooses
type Policy interface {
	SelectAction(t timestep.TimeStep) int
}

// NoLearner is a Learner which never learns. Agents which only act,
// such as fixed baselines, embed a NoLearner.
type NoLearner struct{}

// Step implements the Learner interface
func (NoLearner) Step() error { return nil }

// Observe implements the Learner interface
func (NoLearner) Observe(int, timestep.TimeStep) error { return nil }

// ObserveFirst implements the Learner interface
func (NoLearner) ObserveFirst(timestep.TimeStep) error { return nil }

// EndEpisode implements the Learner interface
func (NoLearner) EndEpisode() {}
