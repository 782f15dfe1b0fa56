// Package config loads the configuration of training runs from a YAML
// file, a .env file and MMLEARN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/mmlearn/agent"
	_ "github.com/samuelfneumann/mmlearn/agent/baseline"
	"github.com/samuelfneumann/mmlearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/mmlearn/environment/envconfig"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/experiment"
	"github.com/samuelfneumann/mmlearn/logging"
)

// EnvPrefix prefixes the environment variables overriding configuration
// keys, e.g. MMLEARN_EXPERIMENT_EPISODES
const EnvPrefix = "MMLEARN"

// Config is the complete configuration of a training run
type Config struct {
	Experiment experiment.Config `mapstructure:"experiment"`
	QLearning  qlearning.Config  `mapstructure:"qlearning"`

	// Agents lists the agent types compared, in order
	Agents []string `mapstructure:"agents"`

	// Store is the path of the SQLite database runs are saved in. Runs
	// are not saved if it is empty.
	Store string `mapstructure:"store"`

	Log logging.Config `mapstructure:"log"`
}

// Default returns the default configuration: 1000 episodes of each
// agent on an InventoryTime environment with one unit of time split
// into 200 steps over Brownian motion of volatility 2 starting at 100
func Default() Config {
	agents := make([]string, 0, len(agent.Types()))
	for _, t := range agent.Types() {
		agents = append(agents, string(t))
	}

	return Config{
		Experiment: experiment.Config{
			Episodes: 1000,
			EnvConf:  envconfig.Default(),
		},
		QLearning: qlearning.DefaultConfig(),
		Agents:    agents,
		Log:       logging.DefaultConfig(),
	}
}

// setDefaults registers every key of Default with v so that each can be
// overridden through the environment
func setDefaults(v *viper.Viper) {
	d := Default()
	e := d.Experiment.EnvConf
	m := e.Market

	v.SetDefault("experiment.episodes", d.Experiment.Episodes)
	v.SetDefault("experiment.seed", d.Experiment.Seed)
	v.SetDefault("experiment.checkpoint_every", d.Experiment.CheckpointEvery)
	v.SetDefault("experiment.checkpoint_dir", d.Experiment.CheckpointDir)

	v.SetDefault("experiment.env.environment", string(e.Environment))
	v.SetDefault("experiment.env.inventory_aversion", e.InventoryAversion)
	v.SetDefault("experiment.env.price.volatility", e.Price.Volatility)
	v.SetDefault("experiment.env.price.initial_price", e.Price.InitialPrice)
	v.SetDefault("experiment.env.price.drift", e.Price.Drift)
	v.SetDefault("experiment.env.price.series_file", e.Price.SeriesFile)
	v.SetDefault("experiment.env.price.separator", e.Price.Separator)

	v.SetDefault("experiment.env.market.total_time", m.TotalTime)
	v.SetDefault("experiment.env.market.delta_t", m.DeltaT)
	v.SetDefault("experiment.env.market.wealth_weight", m.WealthWeight)
	v.SetDefault("experiment.env.market.inventory_decay", m.InventoryDecay)
	v.SetDefault("experiment.env.market.tick", m.Tick)
	v.SetDefault("experiment.env.market.initial_cash", m.InitialCash)
	v.SetDefault("experiment.env.market.actions", m.Actions)
	v.SetDefault("experiment.env.market.discount", m.Discount)
	v.SetDefault("experiment.env.market.fill.intensity", m.Fill.Intensity)
	v.SetDefault("experiment.env.market.fill.decay", m.Fill.Decay)
	v.SetDefault("experiment.env.market.time_bin_size", m.TimeBinSize)

	v.SetDefault("qlearning.epsilon", d.QLearning.Epsilon)
	v.SetDefault("qlearning.learning_rate", d.QLearning.LearningRate)

	v.SetDefault("agents", d.Agents)
	v.SetDefault("store", d.Store)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.file", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
}

// Load loads the configuration. Values are taken, in decreasing order
// of priority, from MMLEARN_* environment variables (including those
// set in a .env file in the working directory), the YAML file at path
// and the defaults. If path is empty, only the environment and
// defaults are used.
func Load(path string) (Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config %v: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if err := c.Experiment.Validate(); err != nil {
		return err
	}
	if len(c.Agents) == 0 {
		return mmerrors.Invalid("no agents configured")
	}
	_, err := c.Labelled()
	return err
}

// AgentConfig returns the configuration of the agent of type t.
// Q-learning agents are configured by the QLearning section, all other
// registered agent types take no parameters.
func (c Config) AgentConfig(t agent.Type) (agent.Config, error) {
	var a agent.Config
	if t == agent.EGreedyQLearning {
		a = c.QLearning
	} else {
		var err error
		if a, err = agent.NewConfig(t); err != nil {
			return nil, mmerrors.Invalid("no such agent type %q", t)
		}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Labelled returns the configurations of all compared agents, labelled
// by their type
func (c Config) Labelled() ([]experiment.Labelled, error) {
	labelled := make([]experiment.Labelled, 0, len(c.Agents))
	for _, name := range c.Agents {
		a, err := c.AgentConfig(agent.Type(name))
		if err != nil {
			return nil, err
		}
		labelled = append(labelled, experiment.Labelled{Label: name, Agent: a})
	}
	return labelled, nil
}
