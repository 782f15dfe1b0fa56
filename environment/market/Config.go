package market

import (
	"math"

	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/utils/floatutils"
)

// FillConfig determines how quickly quotes placed away from the current
// price get filled. The probability of a quote d ticks away from the
// price being filled in a single step of length dt is
//
//	p(d) = clip(Intensity · exp(-Decay · d) · dt, 0, 1)
type FillConfig struct {
	Intensity float64 `mapstructure:"intensity"`
	Decay     float64 `mapstructure:"decay"`
}

// Config holds the parameters of a market environment
type Config struct {
	TotalTime float64 `mapstructure:"total_time"`
	DeltaT    float64 `mapstructure:"delta_t"`

	// WealthWeight (a) scales the change in wealth in the reward, and
	// InventoryDecay (b) is the rate of the exponential inventory term
	WealthWeight   float64 `mapstructure:"wealth_weight"`
	InventoryDecay float64 `mapstructure:"inventory_decay"`

	Tick        float64    `mapstructure:"tick"`
	InitialCash float64    `mapstructure:"initial_cash"`
	Actions     int        `mapstructure:"actions"`
	Discount    float64    `mapstructure:"discount"`
	Fill        FillConfig `mapstructure:"fill"`

	// TimeBinSize is the number of steps grouped into a single time
	// state by the InventoryTime environment
	TimeBinSize int `mapstructure:"time_bin_size"`
}

// DefaultConfig returns the default market configuration: one unit of
// time split into 200 steps, 3 tick distances on each side of the book
func DefaultConfig() Config {
	return Config{
		TotalTime:      1,
		DeltaT:         0.005,
		WealthWeight:   4,
		InventoryDecay: 1,
		Tick:           0.1,
		InitialCash:    1000,
		Actions:        9,
		Discount:       1.0,
		Fill:           FillConfig{Intensity: 140, Decay: 1.5},
		TimeBinSize:    20,
	}
}

// Validate returns an error describing why the Config cannot be used to
// construct an environment, or nil if it can
func (c Config) Validate() error {
	if !floatutils.Finite(c.TotalTime, c.DeltaT, c.WealthWeight,
		c.InventoryDecay, c.Tick, c.InitialCash, c.Discount,
		c.Fill.Intensity, c.Fill.Decay) {
		return mmerrors.Invalid("market parameters must be finite")
	}
	if c.DeltaT <= 0 {
		return mmerrors.Invalid("time increment %v must be positive", c.DeltaT)
	}
	if c.TotalTime <= 0 {
		return mmerrors.Invalid("total time %v must be positive", c.TotalTime)
	}
	if c.Steps() < 1 {
		return mmerrors.Invalid("total time %v shorter than time increment %v",
			c.TotalTime, c.DeltaT)
	}
	if c.Actions <= 0 {
		return mmerrors.Invalid("action space size %d must be positive",
			c.Actions)
	}
	if side := c.Side(); side*side != c.Actions {
		return mmerrors.Invalid("action space size %d is not a perfect "+
			"square", c.Actions)
	}
	if c.Tick < 0 {
		return mmerrors.Invalid("tick %v cannot be negative", c.Tick)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return mmerrors.Invalid("discount %v outside [0, 1]", c.Discount)
	}
	if c.Fill.Intensity < 0 || c.Fill.Decay < 0 {
		return mmerrors.Invalid("fill intensity %v and decay %v cannot be "+
			"negative", c.Fill.Intensity, c.Fill.Decay)
	}
	return nil
}

// Steps returns the number of steps in an episode
func (c Config) Steps() int {
	return floatutils.Steps(c.TotalTime, c.DeltaT)
}

// Side returns the number of tick distances available on each side of
// the book
func (c Config) Side() int {
	return int(math.Round(math.Sqrt(float64(c.Actions))))
}

// DecodeAction splits an action into the distance, in ticks, of the bid
// and of the ask from the current price
func (c Config) DecodeAction(action int) (dBid, dAsk int) {
	side := c.Side()
	return action / side, action % side
}

// EncodeAction is the inverse of DecodeAction
func (c Config) EncodeAction(dBid, dAsk int) int {
	return dBid*c.Side() + dAsk
}
