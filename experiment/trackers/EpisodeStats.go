package trackers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	ts "github.com/samuelfneumann/mmlearn/timestep"
)

// Episode records the statistics of a single finished episode
type Episode struct {
	// Length is the number of steps taken in the episode
	Length int

	// Return is the sum of rewards over the episode
	Return float64

	// Wealth and Inventory are the agent's wealth and inventory at the
	// end of the episode
	Wealth    float64
	Inventory int

	// Profit is the change in wealth over the episode
	Profit float64

	// MeanAbsInventory is the mean absolute inventory over all steps of
	// the episode
	MeanAbsInventory float64

	// Fills is the number of quotes executed over the episode
	Fills int
}

// EpisodeStats tracks and saves the statistics of each episode in an
// experiment. An Episode is recorded when the last timestep of an
// episode is tracked and is never modified afterwards. If the last
// episode in an experiment does not finish, it is not recorded.
type EpisodeStats struct {
	label    string
	filename string
	episodes []Episode

	lastTimeStep  int
	current       Episode
	initialWealth float64
	absInventory  float64
}

// NewEpisodeStats returns a new EpisodeStats tracker for the agent
// called label. Save writes the tracked data to filename.
func NewEpisodeStats(label, filename string) *EpisodeStats {
	return &EpisodeStats{
		label:        label,
		filename:     filename,
		lastTimeStep: -1,
	}
}

// Track tracks the data of a timestep. Track must be called on every
// timestep of an episode, starting with the first, and panics if it is
// called for non-sequential timesteps.
func (e *EpisodeStats) Track(step ts.TimeStep) {
	// Ensure that Track is called on sequential timesteps
	if e.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			e.lastTimeStep, step.Number)
		panic(msg)
	}

	if step.First() {
		e.current = Episode{Wealth: step.Wealth, Inventory: step.Inventory}
		e.initialWealth = step.Wealth
		e.absInventory = 0
		e.lastTimeStep = step.Number
		return
	}

	e.current.Length = step.Number
	e.current.Return += step.Reward
	e.current.Wealth = step.Wealth
	e.current.Inventory = step.Inventory
	e.current.Profit = step.Wealth - e.initialWealth
	e.current.Fills += step.Fills
	e.absInventory += math.Abs(float64(step.Inventory))
	e.lastTimeStep = step.Number

	// Episode has ended, cache its statistics and begin tracking the
	// next episode
	if step.Last() {
		e.current.MeanAbsInventory = e.absInventory / float64(step.Number)
		e.episodes = append(e.episodes, e.current)

		e.current = Episode{}
		e.absInventory = 0
		e.lastTimeStep = -1
	}
}

// Label returns the label of the tracked agent
func (e *EpisodeStats) Label() string {
	return e.label
}

// Len returns the number of finished episodes
func (e *EpisodeStats) Len() int {
	return len(e.episodes)
}

// Episodes returns the statistics of each finished episode
func (e *EpisodeStats) Episodes() []Episode {
	episodes := make([]Episode, len(e.episodes))
	copy(episodes, e.episodes)
	return episodes
}

// Returns returns the return of each finished episode
func (e *EpisodeStats) Returns() []float64 {
	return e.column(func(ep Episode) float64 { return ep.Return })
}

// Wealths returns the terminal wealth of each finished episode
func (e *EpisodeStats) Wealths() []float64 {
	return e.column(func(ep Episode) float64 { return ep.Wealth })
}

// Profits returns the change in wealth over each finished episode
func (e *EpisodeStats) Profits() []float64 {
	return e.column(func(ep Episode) float64 { return ep.Profit })
}

// Inventories returns the terminal inventory of each finished episode
func (e *EpisodeStats) Inventories() []float64 {
	return e.column(func(ep Episode) float64 {
		return float64(ep.Inventory)
	})
}

// AbsInventories returns the mean absolute inventory of each finished
// episode
func (e *EpisodeStats) AbsInventories() []float64 {
	return e.column(func(ep Episode) float64 { return ep.MeanAbsInventory })
}

// Fills returns the number of executed quotes of each finished episode
func (e *EpisodeStats) Fills() []float64 {
	return e.column(func(ep Episode) float64 { return float64(ep.Fills) })
}

func (e *EpisodeStats) column(f func(Episode) float64) []float64 {
	col := make([]float64, len(e.episodes))
	for i, ep := range e.episodes {
		col[i] = f(ep)
	}
	return col
}

// Summary summarizes the finished episodes
func (e *EpisodeStats) Summary() Summary {
	return Summarize(e.label, e.episodes)
}

// Save saves the data tracked by the EpisodeStats Tracker to disk
func (e *EpisodeStats) Save() error {
	return save(e.filename, e.episodes)
}

// LoadEpisodes loads and returns the episodes saved by an EpisodeStats
// Tracker
func LoadEpisodes(filename string) ([]Episode, error) {
	var episodes []Episode
	if err := load(filename, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// Stat is the sample mean and standard deviation of some statistic
type Stat struct {
	Mean, Std float64
}

func newStat(x []float64) Stat {
	switch len(x) {
	case 0:
		return Stat{}
	case 1:
		return Stat{Mean: x[0]}
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Stat{mean, std}
}

// Summary summarizes the episodes of a single agent
type Summary struct {
	Label            string
	Episodes         int
	Length           Stat
	Return           Stat
	Wealth           Stat
	Profit           Stat
	Inventory        Stat
	MeanAbsInventory Stat
	Fills            Stat
}

// Summarize summarizes the episodes of the agent called label
func Summarize(label string, episodes []Episode) Summary {
	s := &EpisodeStats{label: label, episodes: episodes}

	lengths := s.column(func(ep Episode) float64 { return float64(ep.Length) })
	return Summary{
		Label:            label,
		Episodes:         len(episodes),
		Length:           newStat(lengths),
		Return:           newStat(s.Returns()),
		Wealth:           newStat(s.Wealths()),
		Profit:           newStat(s.Profits()),
		Inventory:        newStat(s.Inventories()),
		MeanAbsInventory: newStat(s.AbsInventories()),
		Fills:            newStat(s.Fills()),
	}
}
