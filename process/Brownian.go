// Package process implements stochastic price processes which generate
// discretized sample paths of an asset price.
package process

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/utils/floatutils"
)

// Config holds the parameters of a Brownian price process
type Config struct {
	TotalTime    float64 `mapstructure:"total_time"`
	DeltaT       float64 `mapstructure:"delta_t"`
	Volatility   float64 `mapstructure:"volatility"`
	InitialPrice float64 `mapstructure:"initial_price"`
	Drift        float64 `mapstructure:"drift"`
}

// Validate returns an error describing why the Config cannot be used to
// construct a process, or nil if it can
func (c Config) Validate() error {
	if !floatutils.Finite(c.TotalTime, c.DeltaT, c.Volatility,
		c.InitialPrice, c.Drift) {
		return mmerrors.Invalid("process parameters must be finite")
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
	if c.Volatility < 0 {
		return mmerrors.Invalid("volatility %v cannot be negative",
			c.Volatility)
	}
	if c.InitialPrice <= 0 {
		return mmerrors.Invalid("initial price %v must be positive",
			c.InitialPrice)
	}
	return nil
}

// Steps returns the number of increments in a sample path
func (c Config) Steps() int {
	return floatutils.Steps(c.TotalTime, c.DeltaT)
}

// Brownian implements arithmetic Brownian motion. Increments are added
// to the price directly, so that their distribution does not depend on
// the price level:
//
//	S(t+dt) = S(t) + μ dt + σ √dt Z,	Z ~ N(0, 1)
type Brownian struct {
	Config
	price  float64
	series []float64
	noise  distuv.Normal
}

// NewBrownian returns a new Brownian process drawing its increments from
// src
func NewBrownian(c Config, src rand.Source) (*Brownian, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	noise := distuv.Normal{
		Mu:    0,
		Sigma: c.Volatility * math.Sqrt(c.DeltaT),
		Src:   src,
	}

	return &Brownian{
		Config: c,
		price:  c.InitialPrice,
		series: []float64{c.InitialPrice},
		noise:  noise,
	}, nil
}

// GenerateSeries generates and returns a new sample path. Each call
// starts again from the initial price and overwrites the previously
// generated path, so callers which need an old path must copy it.
func (b *Brownian) GenerateSeries() []float64 {
	steps := b.Steps()

	b.price = b.InitialPrice
	b.series = make([]float64, 1, steps+1)
	b.series[0] = b.InitialPrice

	for i := 0; i < steps; i++ {
		b.timeStep()
	}
	return b.series
}

// timeStep advances the price by a single increment
func (b *Brownian) timeStep() {
	b.price += b.Drift*b.DeltaT + b.noise.Rand()
	b.series = append(b.series, b.price)
}

// Series returns the most recently generated sample path
func (b *Brownian) Series() []float64 {
	return b.series
}

// Price returns the last price of the most recently generated path
func (b *Brownian) Price() float64 {
	return b.price
}
