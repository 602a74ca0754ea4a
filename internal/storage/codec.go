package storage

import (
	"encoding/json"
)

// EncodeTasks serializes tasks as a JSON array with 2-space indentation and
// a trailing newline. A nil slice is written as [] rather than null.
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = make([]Task, 0)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

// DecodeTasks parses a stored payload.
//
// Returns an empty slice if data is empty, is not valid JSON, or is not an
// array. Each element is decoded on its own: elements that aren't a task
// object or are missing any of the three fields are dropped, and the rest
// are kept in order.
func DecodeTasks(data []byte) []Task {
	if len(data) == 0 {
		return make([]Task, 0)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return make([]Task, 0)
	}

	tasks := make([]Task, 0, len(raw))
	for _, elem := range raw {
		var t Task
		if err := json.Unmarshal(elem, &t); err != nil || !t.Valid() {
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks
}
