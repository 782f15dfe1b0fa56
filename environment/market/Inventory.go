package market

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/environment"
	"github.com/samuelfneumann/mmlearn/timestep"
)

// Inventory is a market environment whose states are the inventory
// buckets only. States are in [0, NumBuckets).
//
// Inventory implements the environment.Environment interface
type Inventory struct {
	*base
}

// NewInventory creates a new Inventory environment driven by the price
// paths of p. Fills are sampled from src.
func NewInventory(c Config, p PriceProcess, src rand.Source,
	opts ...Option) (*Inventory, timestep.TimeStep, error) {
	b, err := newBase(c, p, src, opts)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newInventory: %w", err)
	}

	env := &Inventory{b}
	b.state = env.determineState

	step, err := b.start()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newInventory: %w", err)
	}
	return env, step, nil
}

// determineState returns the bucket of the current inventory
func (e *Inventory) determineState(int) int {
	return int(InventoryBucket(e.inventory))
}

// ObservationSpec returns the observation specification of the
// environment
func (e *Inventory) ObservationSpec() environment.Spec {
	return environment.NewSpec(NumBuckets, environment.Observation)
}

func (e *Inventory) String() string {
	return fmt.Sprintf("Inventory | Price: %.2f  |  Cash: %.2f  |  "+
		"Inventory: %d  |  Step: %d/%d", e.price, e.cash, e.inventory,
		e.currentStep.Number, e.Steps())
}
