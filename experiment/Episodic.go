// Package experiment implements functionality for running experiments
// of agents acting in market environments
package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/mmlearn/agent"
	env "github.com/samuelfneumann/mmlearn/environment"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/experiment/checkpointer"
	"github.com/samuelfneumann/mmlearn/experiment/trackers"
	ts "github.com/samuelfneumann/mmlearn/timestep"
)

// logInterval is the number of episodes between progress logs
const logInterval = 10

// Episodic is an experiment that runs an agent online for a fixed
// number of episodes.
//
// Every TimeStep generated during the experiment is sent to the
// registered Trackers, which determine which data is cached and saved,
// and to the registered Checkpointers, which periodically save the
// agent's learned state.
type Episodic struct {
	env.Environment
	agent.Agent
	episodes      int
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        zerolog.Logger
}

// NewEpisodic creates and returns a new episodic experiment running
// agent a on environment e for the given number of episodes
func NewEpisodic(e env.Environment, a agent.Agent, episodes int,
	t []trackers.Tracker, c []checkpointer.Checkpointer,
	logger zerolog.Logger) (*Episodic, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("newEpisodic: %w", mmerrors.Invalid(
			"number of episodes %d must be positive", episodes))
	}
	return &Episodic{e, a, episodes, t, c, logger}, nil
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Episodic) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Episodes returns the number of episodes the experiment runs for
func (o *Episodic) Episodes() int {
	return o.episodes
}

// RunEpisode runs a single episode of the experiment and returns the
// episode's return
func (o *Episodic) RunEpisode() (float64, error) {
	step := o.Environment.Reset()
	if err := o.Agent.ObserveFirst(step); err != nil {
		return 0, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	var ret float64
	for done := false; !done; {
		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, done = o.Environment.Step(action)
		ret += step.Reward

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return ret, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return ret, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()

	return ret, o.checkpoint(step)
}

// Run runs all episodes of the experiment. The experiment stops early
// if ctx is cancelled between episodes.
func (o *Episodic) Run(ctx context.Context) error {
	for i := 1; i <= o.episodes; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run: stopped after %d episodes: %w", i-1, err)
		}

		ret, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: episode %d: %w", i, err)
		}

		if i%logInterval == 0 || i == o.episodes {
			o.logger.Debug().
				Int("episode", i).
				Int("episodes", o.episodes).
				Float64("return", ret).
				Msg("episode finished")
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Episodic) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Episodic) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint passes the current timestep to each Checkpointer
func (o *Episodic) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("checkpoint: %w", err)
		}
	}
	return nil
}
