package agent

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. All
	// randomness of the agent is drawn from src.
	CreateAgent(env environment.Environment, src rand.Source) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent created by the Config
	Type() Type
}

// Type represents a specific type of agent
type Type string

const (
	EGreedyQLearning Type = "q-learning"
	Random           Type = "random"
	ZeroTick         Type = "zero-tick"
)

// Types returns all agent types, in the order they are usually compared
func Types() []Type {
	return []Type{EGreedyQLearning, ZeroTick, Random}
}
