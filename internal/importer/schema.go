package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the top-level JSON structure for a bulk import. It replaces
// every stored work item and event.
type Snapshot struct {
	WorkItems []WorkItemImport `json:"work_items"`
	Events    []EventImport    `json:"events,omitempty"`
}

// WorkItemImport defines a work item in the import file. Timestamps are RFC3339.
type WorkItemImport struct {
	ID             string  `json:"id,omitempty"`
	Title          string  `json:"title"`
	Deadline       string  `json:"deadline"`
	Strictness     string  `json:"strictness,omitempty"`
	RequiredHours  float64 `json:"required_hours"`
	CompletedHours float64 `json:"completed_hours,omitempty"`
}

// EventImport defines a fixed calendar commitment in the import file.
type EventImport struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// LoadSnapshot reads and parses a snapshot JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}

func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &s, nil
}
