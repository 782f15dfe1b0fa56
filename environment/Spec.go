package environment

import (
	"fmt"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation
type SpecType int

const (
	Action SpecType = iota
	Observation
)

func (s SpecType) String() string {
	if s == Action {
		return "Action"
	}
	return "Observation"
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type
// and number of values of an action or observation in an environment.
// Discrete values are the integers in [0, Size).
type Spec struct {
	Type SpecType
	Size int
	Cardinality
}

// NewSpec constructs a new discrete environment specification with size
// distinct values
func NewSpec(size int, t SpecType) Spec {
	if size <= 0 {
		panic(fmt.Sprintf("newSpec: %v spec size %d must be positive", t,
			size))
	}
	return Spec{t, size, Discrete}
}

// Contains returns whether v is a legal value under the Spec
func (s Spec) Contains(v int) bool {
	return v >= 0 && v < s.Size
}
