// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/timestep"
)

// EGreedy implements an ε-greedy policy over an action-value table
type EGreedy struct {
	table   *tabular.Table
	epsilon float64
	src     rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The policy reads
// its action values from table, so updates to table change the policy.
func NewEGreedy(e float64, table *tabular.Table, src rand.Source) *EGreedy {
	if e < 0 || e > 1 {
		panic(fmt.Sprintf("newEGreedy: epsilon %v outside [0, 1]", e))
	}
	return &EGreedy{table, e, src}
}

// Probabilities returns the probability of selecting each action in
// state. The greedy action, ties broken towards the lowest action, is
// selected with probability 1 - ε + ε/|A|, and every other action with
// probability ε/|A|.
func (p *EGreedy) Probabilities(state int) []float64 {
	numActions := p.table.Actions()

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	greedyAction := p.table.ArgMax(state)
	actionProbabilities[greedyAction] += 1.0 - p.epsilon

	return actionProbabilities
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) int {
	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(p.Probabilities(t.Observation), p.src)

	return int(dist.Rand())
}

// Epsilon returns the exploration rate of the policy
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// Table returns the action-value table the policy acts on
func (p *EGreedy) Table() *tabular.Table {
	return p.table
}
