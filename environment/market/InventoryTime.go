package market

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/environment"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/timestep"
)

// InventoryTime is a market environment whose states combine the
// inventory bucket with the time left in the episode. Steps are grouped
// into bins of TimeBinSize steps to keep the state space small:
//
//	state = timeBin · NumBuckets + bucket
//	timeBin = (stepsLeft - 1) / TimeBinSize
//
// so that states early in the episode have the largest codes. The
// terminal state falls in time bin 0.
//
// InventoryTime implements the environment.Environment interface
type InventoryTime struct {
	*base
}

// NewInventoryTime creates a new InventoryTime environment driven by
// the price paths of p. Fills are sampled from src.
func NewInventoryTime(c Config, p PriceProcess, src rand.Source,
	opts ...Option) (*InventoryTime, timestep.TimeStep, error) {
	if c.TimeBinSize <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("newInventoryTime: %w",
			mmerrors.Invalid("time bin size %d must be positive",
				c.TimeBinSize))
	}

	b, err := newBase(c, p, src, opts)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newInventoryTime: %w",
			err)
	}

	env := &InventoryTime{b}
	b.state = env.determineState

	step, err := b.start()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newInventoryTime: %w",
			err)
	}
	return env, step, nil
}

// TimeBins returns the number of time bins in an episode
func (e *InventoryTime) TimeBins() int {
	return (e.Steps() + e.TimeBinSize - 1) / e.TimeBinSize
}

// determineState combines the time bin and inventory bucket into a
// single state code
func (e *InventoryTime) determineState(stepsLeft int) int {
	timeBin := 0
	if stepsLeft > 0 {
		timeBin = (stepsLeft - 1) / e.TimeBinSize
	}
	return timeBin*NumBuckets + int(InventoryBucket(e.inventory))
}

// SplitState splits a state code into its time bin and inventory
// bucket
func SplitState(state int) (timeBin int, bucket Bucket) {
	return state / NumBuckets, Bucket(state % NumBuckets)
}

// ObservationSpec returns the observation specification of the
// environment
func (e *InventoryTime) ObservationSpec() environment.Spec {
	return environment.NewSpec(e.TimeBins()*NumBuckets,
		environment.Observation)
}

func (e *InventoryTime) String() string {
	return fmt.Sprintf("InventoryTime | Price: %.2f  |  Cash: %.2f  |  "+
		"Inventory: %d  |  Step: %d/%d", e.price, e.cash, e.inventory,
		e.currentStep.Number, e.Steps())
}
