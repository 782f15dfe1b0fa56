package experiment

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/agent"
	"github.com/samuelfneumann/mmlearn/agent/tabular"
	"github.com/samuelfneumann/mmlearn/environment/envconfig"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/experiment/checkpointer"
	"github.com/samuelfneumann/mmlearn/experiment/trackers"
)

// Config represents a configuration of an experiment
type Config struct {
	Episodes int             `mapstructure:"episodes"`
	Seed     uint64          `mapstructure:"seed"`
	EnvConf  envconfig.Config `mapstructure:"env"`

	// CheckpointEvery and CheckpointDir configure periodic checkpoints
	// of learned action values. Checkpointing is disabled when
	// CheckpointEvery is not positive.
	CheckpointEvery int    `mapstructure:"checkpoint_every"`
	CheckpointDir   string `mapstructure:"checkpoint_dir"`
}

// Validate returns an error describing why the Config cannot be used
// to run an experiment, or nil if it can
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return mmerrors.Invalid("number of episodes %d must be positive",
			c.Episodes)
	}
	return c.EnvConf.Validate()
}

// Labelled is an agent configuration with the label it is reported as
type Labelled struct {
	Label string
	Agent agent.Config
}

// Result is the outcome of running a single labelled agent
type Result struct {
	Label  string
	Type   agent.Type
	Config agent.Config
	Agent  agent.Agent
	Stats  *trackers.EpisodeStats
}

// Summary summarizes the episodes of the Result
func (r Result) Summary() trackers.Summary {
	return r.Stats.Summary()
}

// tabled agents expose their learned action values
type tabled interface {
	Table() *tabular.Table
}

// CreateExp creates the experiment running the agent described by a.
// The environment and agent share one source seeded with the Config's
// seed, so runs of the same Config are reproducible.
func (c Config) CreateExp(a Labelled, logger zerolog.Logger) (*Episodic,
	Result, error) {
	if err := c.Validate(); err != nil {
		return nil, Result{}, fmt.Errorf("createExp: %w", err)
	}
	src := rand.NewSource(c.Seed)

	e, _, err := c.EnvConf.Create(src)
	if err != nil {
		return nil, Result{}, fmt.Errorf("createExp: could not create "+
			"environment: %w", err)
	}
	ag, err := a.Agent.CreateAgent(e, src)
	if err != nil {
		return nil, Result{}, fmt.Errorf("createExp: could not create "+
			"agent: %w", err)
	}

	stats := trackers.NewEpisodeStats(a.Label,
		filepath.Join(c.CheckpointDir, a.Label+"-episodes.bin"))

	var check []checkpointer.Checkpointer
	if t, ok := ag.(tabled); ok && c.CheckpointEvery > 0 {
		filename := checkpointer.FilenameEnumerator(0,
			filepath.Join(c.CheckpointDir, a.Label+"-table"), ".bin")
		check = append(check,
			checkpointer.NewNEpisode(c.CheckpointEvery, t.Table(), filename))
	}

	logger = logger.With().Str("agent", a.Label).Logger()
	exp, err := NewEpisodic(e, ag, c.Episodes, []trackers.Tracker{stats},
		check, logger)
	if err != nil {
		return nil, Result{}, fmt.Errorf("createExp: %w", err)
	}

	return exp, Result{a.Label, a.Agent.Type(), a.Agent, ag, stats}, nil
}

// Comparison runs several labelled agents on the same environment
// configuration, one after another
type Comparison struct {
	Config
	agents []Labelled
	logger zerolog.Logger
}

// NewComparison returns a new Comparison of the argument agents
func NewComparison(c Config, logger zerolog.Logger,
	agents ...Labelled) *Comparison {
	return &Comparison{c, agents, logger}
}

// Run runs the experiment of each agent in order and returns their
// results in the same order
func (c *Comparison) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(c.agents))
	for _, a := range c.agents {
		exp, result, err := c.CreateExp(a, c.logger)
		if err != nil {
			return results, fmt.Errorf("run: %v: %w", a.Label, err)
		}

		c.logger.Info().
			Str("agent", a.Label).
			Str("type", string(result.Type)).
			Int("episodes", exp.Episodes()).
			Msg("running agent")

		if err := exp.Run(ctx); err != nil {
			return results, fmt.Errorf("run: %v: %w", a.Label, err)
		}
		results = append(results, result)

		s := result.Summary()
		c.logger.Info().
			Str("agent", a.Label).
			Float64("mean_return", s.Return.Mean).
			Float64("mean_wealth", s.Wealth.Mean).
			Float64("mean_abs_inventory", s.MeanAbsInventory.Mean).
			Msg("agent finished")
	}
	return results, nil
}
