// Package errors provides the sentinel errors shared by the simulator,
// the learners and the persistence layer.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a component is constructed with
	// parameters it cannot run with.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEpisodeOver signals that an environment was asked to move past
	// the end of its price path. It is raised as a panic since it can
	// only happen if step bookkeeping has drifted from the path length.
	ErrEpisodeOver = errors.New("episode over: price path exhausted")

	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")
)

// Invalid returns an error wrapping ErrInvalidConfig with a description
// of the offending parameter.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
