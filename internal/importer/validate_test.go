package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() *Snapshot {
	return &Snapshot{
		WorkItems: []WorkItemImport{
			{ID: "essay", Title: "History essay", Deadline: "2025-03-10T17:00:00Z", Strictness: "strict", RequiredHours: 6},
			{Title: "Reading", Deadline: "2025-03-12T12:00:00+01:00", RequiredHours: 3, CompletedHours: 1},
		},
		Events: []EventImport{
			{ID: "lecture", Title: "Lecture", Start: "2025-03-03T13:00:00Z", End: "2025-03-03T15:00:00Z"},
		},
	}
}

func TestValidateSnapshot_Valid(t *testing.T) {
	assert.Empty(t, ValidateSnapshot(validSnapshot()))
}

func TestValidateSnapshot_Empty(t *testing.T) {
	assert.Empty(t, ValidateSnapshot(&Snapshot{}))
}

func TestValidateSnapshot_WorkItemErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *WorkItemImport)
		wantMsg string
	}{
		{"missing title", func(w *WorkItemImport) { w.Title = "  " }, "title is required"},
		{"missing deadline", func(w *WorkItemImport) { w.Deadline = "" }, "deadline is required"},
		{"bad deadline", func(w *WorkItemImport) { w.Deadline = "2025-03-10" }, "expected RFC3339"},
		{"bad strictness", func(w *WorkItemImport) { w.Strictness = "sometimes" }, "strictness: invalid value"},
		{"zero hours", func(w *WorkItemImport) { w.RequiredHours = 0 }, "required_hours must be > 0"},
		{"negative completed", func(w *WorkItemImport) { w.CompletedHours = -1 }, "completed_hours must be >= 0"},
		{"completed exceeds", func(w *WorkItemImport) { w.CompletedHours = 7 }, "exceeds required_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s.WorkItems[0])
			errs := ValidateSnapshot(s)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), "work_items[0]")
			assert.Contains(t, errs[0].Error(), tt.wantMsg)
		})
	}
}

func TestValidateSnapshot_StrictnessCaseInsensitive(t *testing.T) {
	s := validSnapshot()
	s.WorkItems[0].Strictness = "Flexible"
	assert.Empty(t, ValidateSnapshot(s))
}

func TestValidateSnapshot_DuplicateIDs(t *testing.T) {
	s := validSnapshot()
	s.WorkItems[1].ID = "essay"
	s.Events = append(s.Events, s.Events[0])

	errs := ValidateSnapshot(s)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `work_items[1]: duplicate id "essay"`)
	assert.Contains(t, errs[1].Error(), `events[1]: duplicate id "lecture"`)
}

func TestValidateSnapshot_EventErrors(t *testing.T) {
	s := validSnapshot()
	s.Events = []EventImport{
		{Title: "Backwards", Start: "2025-03-03T15:00:00Z", End: "2025-03-03T13:00:00Z"},
		{Title: "Zero", Start: "2025-03-03T15:00:00Z", End: "2025-03-03T15:00:00Z"},
		{Title: "Garbled", Start: "tomorrow", End: "2025-03-03T15:00:00Z"},
	}

	errs := ValidateSnapshot(s)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "must be after start")
	assert.Contains(t, errs[1].Error(), "must be after start")
	assert.Contains(t, errs[2].Error(), "events[2].start")
}

func TestValidateSnapshot_CollectsAllErrors(t *testing.T) {
	s := &Snapshot{
		WorkItems: []WorkItemImport{{}},
		Events:    []EventImport{{}},
	}
	errs := ValidateSnapshot(s)
	// title, deadline, required_hours, start, end
	assert.Len(t, errs, 5)
}

func TestParseSnapshot(t *testing.T) {
	data := []byte(`{
		"work_items": [{"id": "w1", "title": "Lab", "deadline": "2025-03-07T18:00:00Z", "required_hours": 4}],
		"events": [{"title": "Gym", "start": "2025-03-04T12:00:00Z", "end": "2025-03-04T13:00:00Z"}]
	}`)
	s, err := ParseSnapshot(data)
	require.NoError(t, err)
	require.Len(t, s.WorkItems, 1)
	assert.Equal(t, "w1", s.WorkItems[0].ID)
	assert.Equal(t, 4.0, s.WorkItems[0].RequiredHours)
	require.Len(t, s.Events, 1)
	assert.Equal(t, "Gym", s.Events[0].Title)
}

func TestParseSnapshot_Malformed(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"work_items": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing snapshot")
}
