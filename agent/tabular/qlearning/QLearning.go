// Package qlearning implements the tabular Q-Learning algorithm, an
// off-policy TD control method which learns the greedy policy while
// following an ε-greedy behaviour policy.
package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/agent"
	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/agent/tabular/policy"
	"github.com/samuelfneumann/mmlearn/environment"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	*policy.EGreedy
	target *policy.Greedy
	table  *tabular.Table
}

// New creates a new QLearning agent acting in env. Action values start
// at zero, and the behaviour policy draws its randomness from src.
func New(env environment.Environment, c Config,
	src rand.Source) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	table := tabular.NewTable(env.ActionSpec().Size)

	// Create algorithm components sharing the table
	behaviour := policy.NewEGreedy(c.Epsilon, table, src)
	target := policy.NewGreedy(table)
	learner := NewQLearner(table, c.LearningRate)

	return &QLearning{learner, behaviour, target, table}, nil
}

// Table returns the learned action values
func (q *QLearning) Table() *tabular.Table {
	return q.table
}

// Target returns the greedy policy with respect to the learned action
// values
func (q *QLearning) Target() agent.Policy {
	return q.target
}
