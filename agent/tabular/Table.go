// Package tabular implements action-value tables for agents acting in
// environments with finite, discrete states and actions
package tabular

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Table maps states to the estimated values of each action in that
// state. A state which has never been accessed has all action values
// equal to zero; its row is inserted the first time it is accessed.
type Table struct {
	actions int
	values  map[int][]float64
}

// NewTable returns a new, empty Table for the argument number of actions
func NewTable(actions int) *Table {
	if actions <= 0 {
		panic(fmt.Sprintf("newTable: number of actions %d must be positive",
			actions))
	}
	return &Table{actions, make(map[int][]float64)}
}

// Actions returns the number of actions in each row of the Table
func (t *Table) Actions() int {
	return t.actions
}

// Row returns the action values in state. The returned slice is the
// Table's own storage, so writes to it update the Table. If the state
// has not been seen before, a row of zeroes is inserted first.
func (t *Table) Row(state int) []float64 {
	row, ok := t.values[state]
	if !ok {
		row = make([]float64, t.actions)
		t.values[state] = row
	}
	return row
}

// Lookup returns the action values in state without inserting a row
// for unseen states
func (t *Table) Lookup(state int) ([]float64, bool) {
	row, ok := t.values[state]
	return row, ok
}

// At returns the value of action in state
func (t *Table) At(state, action int) float64 {
	return t.Row(state)[action]
}

// Set sets the value of action in state
func (t *Table) Set(state, action int, value float64) {
	t.Row(state)[action] = value
}

// Max returns the largest action value in state
func (t *Table) Max(state int) float64 {
	return floats.Max(t.Row(state))
}

// ArgMax returns the action with the largest value in state. Ties are
// broken in favour of the lowest action.
func (t *Table) ArgMax(state int) int {
	return floats.MaxIdx(t.Row(state))
}

// States returns the states with a row in the Table in increasing order
func (t *Table) States() []int {
	states := make([]int, 0, len(t.values))
	for s := range t.values {
		states = append(states, s)
	}
	sort.Ints(states)
	return states
}

// Len returns the number of states with a row in the Table
func (t *Table) Len() int {
	return len(t.values)
}

// Dense returns the Table as a matrix with one row for each state in
// [0, states) and one column per action. States without a row in the
// Table are all zero. The Table is not modified.
func (t *Table) Dense(states int) *mat.Dense {
	m := mat.NewDense(states, t.actions, nil)
	for s, row := range t.values {
		if s >= 0 && s < states {
			m.SetRow(s, row)
		}
	}
	return m
}

// tableData is the gob serializable representation of a Table
type tableData struct {
	Actions int
	Values  map[int][]float64
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(tableData{t.actions, t.values}); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode table: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (t *Table) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var data tableData
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: could not decode table: %w", err)
	}

	t.actions = data.Actions
	t.values = data.Values
	if t.values == nil {
		t.values = make(map[int][]float64)
	}
	return nil
}
