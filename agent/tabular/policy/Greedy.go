package policy

import (
	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/timestep"
)

// Greedy selects the action with the largest value, ties broken towards
// the lowest action. It needs no randomness.
type Greedy struct {
	table *tabular.Table
}

// NewGreedy creates a new Greedy policy
func NewGreedy(table *tabular.Table) *Greedy {
	return &Greedy{table}
}

// SelectAction selects the greedy action
func (g *Greedy) SelectAction(t timestep.TimeStep) int {
	return g.table.ArgMax(t.Observation)
}
