package taskqueue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const stateFileName = "taskqueue-state.json"

// persistedState is the serializable representation of the queue.
// Field names are stable; calling code treats saved state as a durable
// artifact.
type persistedState struct {
	Backlog  []*TaskRequest `json:"backlog"`
	Receipts []*TaskReceipt `json:"receipts"`
}

// SaveState writes the queue state to a JSON file in the given directory.
// The write is atomic: data is written to a temporary file first, then
// renamed into place.
func (q *Queue) SaveState(dir string) error {
	data, err := json.MarshalIndent(persistedState{
		Backlog:  q.backlog,
		Receipts: q.receipts,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal queue state: %w", err)
	}

	target := filepath.Join(dir, stateFileName)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// LoadState restores a Queue from a previously saved state file in the
// given directory. Backlog order is restored as saved; the saved order is
// already priority-sorted, so no re-sort happens on load.
func LoadState(dir string) (*Queue, error) {
	target := filepath.Join(dir, stateFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal queue state: %w", err)
	}

	if state.Backlog == nil {
		state.Backlog = []*TaskRequest{}
	}
	if state.Receipts == nil {
		state.Receipts = []*TaskReceipt{}
	}

	return &Queue{
		backlog:  state.Backlog,
		receipts: state.Receipts,
	}, nil
}
