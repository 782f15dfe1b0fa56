package market

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/mmlearn/utils/floatutils"
)

// FillModel samples whether quotes get filled
type FillModel struct {
	FillConfig
	deltaT float64
	src    rand.Source
}

// NewFillModel returns a new FillModel for steps of length deltaT
func NewFillModel(c FillConfig, deltaT float64, src rand.Source) *FillModel {
	return &FillModel{c, deltaT, src}
}

// Probability returns the probability that a quote d ticks away from
// the current price is filled in a single step
func (f *FillModel) Probability(d int) float64 {
	p := f.Intensity * math.Exp(-f.Decay*float64(d)) * f.deltaT
	return floatutils.Clip(p, 0, 1)
}

// Fill samples whether a quote d ticks away from the current price is
// filled in a single step
func (f *FillModel) Fill(d int) bool {
	draw := distuv.Bernoulli{P: f.Probability(d), Src: f.src}
	return draw.Rand() == 1
}
