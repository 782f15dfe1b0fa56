package process

import (
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
)

// Replay is a price process which serves the same, previously recorded
// sample path on every call to GenerateSeries. It lets an environment be
// driven by a path saved with SaveSeries.
type Replay struct {
	series []float64
}

// NewReplay returns a Replay of series. The series must hold at least
// two prices.
func NewReplay(series []float64) (*Replay, error) {
	if len(series) < 2 {
		return nil, mmerrors.Invalid("replayed series needs at least 2 "+
			"prices, got %d", len(series))
	}

	s := make([]float64, len(series))
	copy(s, series)
	return &Replay{s}, nil
}

// GenerateSeries returns a copy of the recorded path
func (r *Replay) GenerateSeries() []float64 {
	s := make([]float64, len(r.series))
	copy(s, r.series)
	return s
}

// Len returns the number of prices in the recorded path
func (r *Replay) Len() int {
	return len(r.series)
}
