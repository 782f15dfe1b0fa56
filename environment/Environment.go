// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/mmlearn/timestep"
)

// Ender determines when episodes should be ended
type Ender interface {
	// End checks whether the argument timestep is the last in the
	// episode. If so, End marks the timestep as a timestep.Last step
	// and returns true.
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated environment with a finite,
// discrete set of states and actions.
//
// Reset starts a new episode and returns its first timestep. Step takes
// a single action in the environment and returns the resulting timestep
// together with a boolean indicating whether the episode has ended.
// Stepping an environment whose episode has ended is a programming
// error and panics.
type Environment interface {
	Reset() timestep.TimeStep
	Step(action int) (timestep.TimeStep, bool)
	ActionSpec() Spec
	ObservationSpec() Spec
}
