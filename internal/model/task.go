package model

import (
	"encoding/json"
	"sort"
	"time"
)

// TaskStatus is the persisted state of a task. Actionability is derived
// from graph state and is never stored.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskBlocked   TaskStatus = "blocked"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid checks whether the task status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskCompleted, TaskBlocked:
		return true
	}
	return false
}

// DateRange is an inclusive start/end pair of planned dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Task is a single step of a season's work plan. Precedence edges reference
// other tasks by their order code, not by identifier; a code may fail to
// resolve (dangling or self-referential edges are tolerated, never assumed
// valid).
type Task struct {
	ID       string `json:"id"`
	SeasonID string `json:"season_id"`

	// Order is a spreadsheet-column code (A..Z, AA, AB, ...) unique within
	// a season. It gives the display rank and serves as the precedence key.
	Order string `json:"order"`

	Name string `json:"name"`

	// Responsible lists the departments authorized to act on the task.
	Responsible []string `json:"responsible,omitempty"`

	// PrecedingTasks names predecessor tasks by order code.
	PrecedingTasks []string `json:"preceding_tasks,omitempty"`

	// LeadTime is the number of days the task takes once actionable.
	LeadTime int `json:"lead_time"`

	Status TaskStatus `json:"status"`

	// ComputedDates is the externally supplied authoritative schedule,
	// distinct from the client-derived reference timeline.
	ComputedDates *DateRange `json:"computed_dates,omitempty"`

	ActualCompletion *time.Time `json:"actual_completion,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`

	// Attachments is opaque metadata; upload and download live elsewhere.
	Attachments json.RawMessage `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResponsibleFor reports whether the given department appears in the task's
// responsible set.
func (t *Task) ResponsibleFor(department string) bool {
	for _, d := range t.Responsible {
		if d == department {
			return true
		}
	}
	return false
}

// CompareOrderCodes orders two spreadsheet-column codes: shorter codes sort
// first, equal-length codes compare lexicographically. So "Z" < "AA".
func CompareOrderCodes(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortTasks stable-sorts tasks into display order by order code.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return CompareOrderCodes(tasks[i].Order, tasks[j].Order) < 0
	})
}
