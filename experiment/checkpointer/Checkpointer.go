// Package checkpointer implements checkpointers, which periodically save
// the learned state of an agent during an experiment
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/mmlearn/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}

// Save writes the serialized object to filename
func Save(filename string, object Serializable) error {
	data, err := object.GobEncode()
	if err != nil {
		return fmt.Errorf("save: could not encode object: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write checkpoint: %w", err)
	}
	return nil
}

// Load restores object from the checkpoint stored in filename
func Load(filename string, object Serializable) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("load: could not read checkpoint: %w", err)
	}

	if err := object.GobDecode(data); err != nil {
		return fmt.Errorf("load: could not decode checkpoint: %w", err)
	}
	return nil
}
