package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mmlearn/process"
)

// execute runs the root command with args in a temporary working
// directory and returns what it wrote to its output stream
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), err
}

func TestSimulateStdout(t *testing.T) {
	out, err := execute(t, "simulate", "--seed", "3")
	require.NoError(t, err)

	series, err := process.ReadSeries(strings.NewReader(out),
		process.DefaultSeparator)
	require.NoError(t, err)
	assert.Len(t, series, 201)
	assert.Equal(t, 100.0, series[0])
}

func TestSimulateFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prices.txt")
	_, err := execute(t, "simulate", "--out", filename)
	require.NoError(t, err)

	series, err := process.LoadSeries(filename, process.DefaultSeparator)
	require.NoError(t, err)
	assert.Len(t, series, 201)
}

func TestTrainAndRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "train", "--episodes", "2", "--seed", "5",
		"--agents", "zero-tick,random", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "zero-tick")
	assert.Contains(t, out, "random")

	out, err = execute(t, "runs", "list", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "zero-tick")
	assert.Contains(t, out, "inventory-time")

	out, err = execute(t, "runs", "show", "1", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "zero-tick")
	assert.Contains(t, out, "seed 5, 2 episodes")

	_, err = execute(t, "runs", "delete", "1", "--store", db)
	require.NoError(t, err)
	_, err = execute(t, "runs", "show", "1", "--store", db)
	assert.Error(t, err)
}

func TestTrainInvalidAgent(t *testing.T) {
	_, err := execute(t, "train", "--episodes", "1", "--agents", "sarsa")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000.13", formatAmount(1000.125))
	assert.Equal(t, "-0.50", formatAmount(-0.5))
}
