package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/timestep"
)

// Uniform selects actions uniformly at random, regardless of state
type Uniform struct {
	actions int
	rng     *rand.Rand
}

// NewUniform returns a new Uniform policy over the argument number of
// actions
func NewUniform(actions int, src rand.Source) *Uniform {
	if actions <= 0 {
		panic(fmt.Sprintf("newUniform: number of actions %d must be positive",
			actions))
	}
	return &Uniform{actions, rand.New(src)}
}

// SelectAction selects a random action
func (u *Uniform) SelectAction(timestep.TimeStep) int {
	return u.rng.Intn(u.actions)
}

// Constant always selects the same action
type Constant struct {
	action int
}

// NewConstant returns a new Constant policy selecting action
func NewConstant(action int) *Constant {
	return &Constant{action}
}

// SelectAction returns the policy's action
func (c *Constant) SelectAction(timestep.TimeStep) int {
	return c.action
}
