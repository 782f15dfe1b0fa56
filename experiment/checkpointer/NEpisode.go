package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/mmlearn/timestep"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each serialized object should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// table1.bin, table2.bin, ..., tableK.bin), use FilenameEnumerator:
	//
	//	n := NewNEpisode(10, table, FilenameEnumerator(0, "table", ".bin"))
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints object at the end
// of every n-th episode
func NewNEpisode(n int, object Serializable,
	filename func() string) Checkpointer {
	if n <= 0 {
		panic(fmt.Sprintf("newNEpisode: interval %d must be positive", n))
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the Checkpointer's tracked object if t ends an
// episode whose number is a multiple of the interval
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}

	n.episodes++
	if n.episodes%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
