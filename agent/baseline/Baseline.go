// Package baseline implements non-learning reference agents for
// benchmarking learned market making policies. Baselines run through
// the same experiment loop as learning agents but never update.
package baseline

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/agent"
	"github.com/samuelfneumann/mmlearn/agent/tabular/policy"
	"github.com/samuelfneumann/mmlearn/environment"
)

func init() {
	agent.Register(agent.Random, RandomConfig{})
	agent.Register(agent.ZeroTick, ZeroTickConfig{})
}

// Random is an agent which selects actions uniformly at random
type Random struct {
	agent.NoLearner
	*policy.Uniform
}

// NewRandom returns a new Random agent for env
func NewRandom(env environment.Environment, src rand.Source) *Random {
	return &Random{Uniform: policy.NewUniform(env.ActionSpec().Size, src)}
}

// ZeroTick is an agent which always quotes at the current price on both
// sides of the book, which is action 0
type ZeroTick struct {
	agent.NoLearner
	*policy.Constant
}

// NewZeroTick returns a new ZeroTick agent
func NewZeroTick() *ZeroTick {
	return &ZeroTick{Constant: policy.NewConstant(0)}
}

// RandomConfig configures a Random agent
type RandomConfig struct{}

// CreateAgent implements the agent.Config interface
func (RandomConfig) CreateAgent(env environment.Environment,
	src rand.Source) (agent.Agent, error) {
	return NewRandom(env, src), nil
}

// Validate implements the agent.Config interface
func (RandomConfig) Validate() error { return nil }

// Type implements the agent.Config interface
func (RandomConfig) Type() agent.Type { return agent.Random }

// ZeroTickConfig configures a ZeroTick agent
type ZeroTickConfig struct{}

// CreateAgent implements the agent.Config interface
func (ZeroTickConfig) CreateAgent(environment.Environment,
	rand.Source) (agent.Agent, error) {
	return NewZeroTick(), nil
}

// Validate implements the agent.Config interface
func (ZeroTickConfig) Validate() error { return nil }

// Type implements the agent.Config interface
func (ZeroTickConfig) Type() agent.Type { return agent.ZeroTick }
