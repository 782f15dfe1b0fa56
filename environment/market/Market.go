// Package market implements market making environments in which an
// agent quotes a bid and an ask around a simulated asset price.
//
// Actions are discrete in [0, Actions) and encode how far, in ticks,
// the bid and the ask are placed from the current price:
//
//	dBid = action / √Actions
//	dAsk = action % √Actions
//
// On each step both quotes are independently filled with a probability
// decaying exponentially in their distance from the price. A filled bid
// buys one unit at price - dBid·tick and a filled ask sells one unit at
// price + dAsk·tick. The reward for a step is
//
//	a·(W' - W) + sign(|q'| - |q|)·exp(b·(T - t))
//
// where W is the wealth (cash plus inventory at the current price), q
// the inventory and T - t the time left in the episode when the step
// is taken. W' is marked at the price the episode moves to, so that a
// held inventory q' contributes a·q'·ΔS to the reward.
//
// Episodes last exactly T/dt steps. The environments in this package
// differ only in how they discretize the state.
package market

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/environment"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/timestep"
	"github.com/samuelfneumann/mmlearn/utils/floatutils"
)

// PriceProcess generates sample paths of an asset price. Each call to
// GenerateSeries must return a fresh path starting at the initial price.
type PriceProcess interface {
	GenerateSeries() []float64
}

// base implements the dynamics common to all market environments
type base struct {
	Config
	process  PriceProcess
	ender    environment.StepLimit
	fills    *FillModel
	terminal TerminalUtility

	cash      float64
	inventory int
	series    []float64
	index     int
	price     float64

	currentStep timestep.TimeStep

	// state discretizes the current inventory given the number of steps
	// left in the episode
	state func(stepsLeft int) int
}

// newBase creates a new base market environment. The state function
// must be set by the caller before the environment is started.
func newBase(c Config, p PriceProcess, src rand.Source,
	opts []Option) (*base, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, mmerrors.Invalid("nil price process")
	}

	b := &base{
		Config:  c,
		process: p,
		ender:   environment.NewStepLimit(c.Steps()),
		fills:   NewFillModel(c.Fill, c.DeltaT, src),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// start resets the environment for its first episode and ensures the
// process generates paths long enough for an episode
func (b *base) start() (timestep.TimeStep, error) {
	step := b.Reset()
	if len(b.series) < b.Steps()+1 {
		return timestep.TimeStep{}, mmerrors.Invalid("price path of "+
			"length %d too short for %d steps", len(b.series), b.Steps())
	}
	return step, nil
}

// Reset resets the environment to the start of a new episode with a
// freshly generated price path and returns the first timestep
func (b *base) Reset() timestep.TimeStep {
	b.cash = b.InitialCash
	b.inventory = 0

	b.series = b.process.GenerateSeries()
	b.index = 0
	b.price = b.at(b.index)

	obs := b.state(b.Steps())
	b.currentStep = timestep.New(timestep.First, 0, b.Discount, obs, 0,
		b.Wealth(), b.inventory)

	return b.currentStep
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended. Actions outside [0, Actions) cause the
// environment to panic, as does stepping after the episode has ended.
func (b *base) Step(action int) (timestep.TimeStep, bool) {
	if action < 0 || action >= b.Actions {
		panic(fmt.Sprintf("step: illegal action %d, actions must be in "+
			"[0, %d)", action, b.Actions))
	}
	if b.currentStep.Last() {
		panic(fmt.Errorf("step: %w: environment must be reset",
			mmerrors.ErrEpisodeOver))
	}

	prevInventory := b.inventory
	prevWealth := b.Wealth()
	remaining := b.TimeRemaining()

	// Sample order executions
	fills := 0
	dBid, dAsk := b.DecodeAction(action)
	if b.fills.Fill(dBid) {
		b.cash -= b.price - float64(dBid)*b.Tick
		b.inventory++
		fills++
	}
	if b.fills.Fill(dAsk) {
		b.cash += b.price + float64(dAsk)*b.Tick
		b.inventory--
		fills++
	}

	number := b.currentStep.Number + 1
	step := timestep.New(timestep.Mid, 0, b.Discount, 0, number, 0,
		b.inventory)
	step.Fills = fills
	done := b.ender.End(&step)

	// The price only moves while the episode is running
	b.index++
	if !done {
		b.price = b.at(b.index)
	}

	// Wealth after the step is marked at the next price, so held
	// inventory is rewarded for the price move
	step.Reward = b.reward(prevWealth, prevInventory, remaining)
	if done && b.terminal != nil {
		step.Reward = b.terminal(step.Reward, b.inventory)
	}

	step.Observation = b.state(b.Steps() - number)
	step.Wealth = b.Wealth()
	b.currentStep = step

	return step, done
}

// reward calculates the reward for a transition given the wealth and
// inventory before the transition and the time left at its start
func (b *base) reward(prevWealth float64, prevInventory int,
	remaining float64) float64 {
	wealthChange := b.Wealth() - prevWealth
	inventoryChange := abs(b.inventory) - abs(prevInventory)

	urgency := math.Exp(b.InventoryDecay * remaining)
	return b.WealthWeight*wealthChange +
		floatutils.Sign(float64(inventoryChange))*urgency
}

// at returns the price at index i of the current path. Reading past the
// end of the path means the step count has drifted from the path
// length, which is unrecoverable.
func (b *base) at(i int) float64 {
	if i >= len(b.series) {
		panic(fmt.Errorf("%w: index %d, path length %d",
			mmerrors.ErrEpisodeOver, i, len(b.series)))
	}
	return b.series[i]
}

// Wealth returns the current cash plus inventory at the current price
func (b *base) Wealth() float64 {
	return b.cash + float64(b.inventory)*b.price
}

// Cash returns the current cash
func (b *base) Cash() float64 {
	return b.cash
}

// Position returns the current inventory
func (b *base) Position() int {
	return b.inventory
}

// Price returns the current asset price
func (b *base) Price() float64 {
	return b.price
}

// Elapsed returns the time elapsed in the current episode
func (b *base) Elapsed() float64 {
	return float64(b.currentStep.Number) * b.DeltaT
}

// TimeRemaining returns the time left in the current episode
func (b *base) TimeRemaining() float64 {
	return b.TotalTime - b.Elapsed()
}

// Series returns the price path of the current episode
func (b *base) Series() []float64 {
	return b.series
}

// LastTimeStep returns the last timestep returned by the environment
func (b *base) LastTimeStep() timestep.TimeStep {
	return b.currentStep
}

// ActionSpec returns the action specification of the environment
func (b *base) ActionSpec() environment.Spec {
	return environment.NewSpec(b.Actions, environment.Action)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
