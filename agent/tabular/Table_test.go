package tabular

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowInsertsZeroes(t *testing.T) {
	table := NewTable(4)

	_, ok := table.Lookup(3)
	assert.False(t, ok)

	assert.Equal(t, []float64{0, 0, 0, 0}, table.Row(3))
	_, ok = table.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, 1, table.Len())

	table.Row(3)[2] = 1.5
	assert.Equal(t, 1.5, table.At(3, 2))

	assert.Panics(t, func() { NewTable(0) })
}

func TestArgMaxTies(t *testing.T) {
	table := NewTable(3)
	assert.Equal(t, 0, table.ArgMax(10))
	assert.Equal(t, 0.0, table.Max(10))

	table.Set(1, 1, 2)
	table.Set(1, 2, 2)
	assert.Equal(t, 1, table.ArgMax(1))
	assert.Equal(t, 2.0, table.Max(1))

	table.Set(2, 0, -1)
	assert.Equal(t, 1, table.ArgMax(2))
}

func TestStatesAndDense(t *testing.T) {
	table := NewTable(2)
	table.Set(5, 1, 3)
	table.Set(0, 0, -1)
	table.Set(9, 0, 7) // outside of the exported range

	assert.Equal(t, []int{0, 5, 9}, table.States())

	m := table.Dense(7)
	r, c := m.Dims()
	assert.Equal(t, 7, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, -1.0, m.At(0, 0))
	assert.Equal(t, 3.0, m.At(5, 1))
	assert.Equal(t, 0.0, m.At(3, 1))
	assert.Equal(t, 3, table.Len())
}

func TestGob(t *testing.T) {
	table := NewTable(3)
	table.Set(4, 2, 0.25)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(table))

	var decoded Table
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
	assert.Equal(t, 3, decoded.Actions())
	assert.Equal(t, []float64{0, 0, 0.25}, decoded.Row(4))
}
