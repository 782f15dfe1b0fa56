package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/agent"
	"github.com/samuelfneumann/mmlearn/environment"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
)

func init() {
	// Register the Config type so that it can be typed using
	// agent.TypedConfig
	agent.Register(agent.EGreedyQLearning, Config{})
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 `mapstructure:"epsilon"` // epsilon for behaviour policy
	LearningRate float64 `mapstructure:"learning_rate"`
}

// DefaultConfig returns the default QLearning configuration
func DefaultConfig() Config {
	return Config{Epsilon: 0.1, LearningRate: 0.5}
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	src rand.Source) (agent.Agent, error) {
	return New(env, c, src)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return mmerrors.Invalid("epsilon %v outside [0, 1]", c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return mmerrors.Invalid("learning rate %v outside (0, 1]",
			c.LearningRate)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearning
}

func (c Config) String() string {
	return fmt.Sprintf("QLearning | ε: %v  |  α: %v", c.Epsilon,
		c.LearningRate)
}
