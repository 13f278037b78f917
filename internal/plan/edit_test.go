package plan

import (
	"testing"
	"time"

	"github.com/groblegark/seasonplan/internal/model"
)

func plannedTask() *model.Task {
	return &model.Task{
		ID:       "tk-1",
		SeasonID: "sn-1",
		Order:    "A",
		Name:     "Sampling",
		Status:   model.TaskPending,
		Remarks:  "initial",
		ComputedDates: &model.DateRange{
			Start: date(2024, time.February, 10),
			End:   date(2024, time.February, 15),
		},
	}
}

func TestApplyEdit_NoChange(t *testing.T) {
	committed := plannedTask()
	proposed := *committed

	patch, rej := ApplyEdit(committed, &proposed)
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}
	if !patch.Empty() {
		t.Errorf("empty diff should produce empty patch, got %+v", patch)
	}
}

func TestApplyEdit_RemarksOnly(t *testing.T) {
	committed := plannedTask()
	proposed := *committed
	proposed.Remarks = "fabric delayed a week"

	patch, rej := ApplyEdit(committed, &proposed)
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}
	if patch.Remarks == nil || *patch.Remarks != "fabric delayed a week" {
		t.Errorf("patch.Remarks = %v, want new remarks", patch.Remarks)
	}
	if patch.ActualCompletion != nil || patch.Status != nil {
		t.Errorf("remarks-only edit must not touch completion or status: %+v", patch)
	}
}

func TestApplyEdit_CompletionDateBounds(t *testing.T) {
	committed := plannedTask()

	for _, tc := range []struct {
		name       string
		completion time.Time
		wantReject bool
	}{
		{"one day before planned start", date(2024, time.February, 9), true},
		{"equal to planned start", date(2024, time.February, 10), false},
		{"after planned start", date(2024, time.February, 20), false},
		{"same day later clock time", time.Date(2024, time.February, 10, 18, 30, 0, 0, time.UTC), false},
	} {
		proposed := *committed
		completion := tc.completion
		proposed.ActualCompletion = &completion

		patch, rej := ApplyEdit(committed, &proposed)
		if tc.wantReject {
			if rej == nil {
				t.Errorf("%s: expected rejection, got patch %+v", tc.name, patch)
				continue
			}
			if rej.Reason != RejectInvalidCompletionDate {
				t.Errorf("%s: reason = %q, want invalid_completion_date", tc.name, rej.Reason)
			}
			if !patch.Empty() {
				t.Errorf("%s: rejected edit must not carry a patch", tc.name)
			}
			continue
		}
		if rej != nil {
			t.Errorf("%s: unexpected rejection %v", tc.name, rej)
			continue
		}
		if patch.ActualCompletion == nil || !patch.ActualCompletion.Equal(completion) {
			t.Errorf("%s: patch.ActualCompletion = %v, want %v", tc.name, patch.ActualCompletion, completion)
		}
		// Setting a completion on a pending task implies completed.
		if patch.Status == nil || *patch.Status != model.TaskCompleted {
			t.Errorf("%s: patch.Status = %v, want completed", tc.name, patch.Status)
		}
	}
}

func TestApplyEdit_NoBoundWithoutComputedDates(t *testing.T) {
	committed := plannedTask()
	committed.ComputedDates = nil
	proposed := *committed
	completion := date(2020, time.January, 1)
	proposed.ActualCompletion = &completion

	patch, rej := ApplyEdit(committed, &proposed)
	if rej != nil {
		t.Fatalf("no planned dates means no bound to violate, got %v", rej)
	}
	if patch.ActualCompletion == nil {
		t.Error("completion should be accepted")
	}
}

func TestApplyEdit_AlreadyCompleted(t *testing.T) {
	completion := date(2024, time.February, 12)
	committed := plannedTask()
	committed.Status = model.TaskCompleted
	committed.ActualCompletion = &completion

	// Moving the completion date on an already-completed task does not
	// re-derive a status transition.
	proposed := *committed
	later := date(2024, time.February, 14)
	proposed.ActualCompletion = &later

	patch, rej := ApplyEdit(committed, &proposed)
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}
	if patch.Status != nil {
		t.Errorf("status should not appear in patch for completed task, got %v", *patch.Status)
	}
	if patch.ActualCompletion == nil || !patch.ActualCompletion.Equal(later) {
		t.Errorf("patch.ActualCompletion = %v, want %v", patch.ActualCompletion, later)
	}
}

func TestApplyEdit_ClearCompletion(t *testing.T) {
	completion := date(2024, time.February, 12)
	committed := plannedTask()
	committed.Status = model.TaskCompleted
	committed.ActualCompletion = &completion

	proposed := *committed
	proposed.ActualCompletion = nil

	patch, rej := ApplyEdit(committed, &proposed)
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}
	if !patch.ClearCompletion {
		t.Error("clearing the date should set ClearCompletion")
	}
	// The engine never transitions a task out of completed.
	if patch.Status != nil {
		t.Errorf("patch.Status = %v, want nil", *patch.Status)
	}

	// The applied result is a state the validator accepts: completed with
	// the date removed.
	updated := patch.Apply(committed)
	if updated.ActualCompletion != nil {
		t.Errorf("applied completion = %v, want nil", updated.ActualCompletion)
	}
	if updated.Status != model.TaskCompleted {
		t.Errorf("applied status = %q, want %q", updated.Status, model.TaskCompleted)
	}
	if err := model.ValidateTask(updated); err != nil {
		t.Errorf("cleared task should validate, got %v", err)
	}
}

func TestPatch_Apply(t *testing.T) {
	committed := plannedTask()
	remarks := "updated"
	completion := date(2024, time.February, 11)
	status := model.TaskCompleted
	patch := Patch{Remarks: &remarks, ActualCompletion: &completion, Status: &status}

	out := patch.Apply(committed)

	if out.Remarks != "updated" || out.Status != model.TaskCompleted {
		t.Errorf("applied task = %+v", out)
	}
	if out.ActualCompletion == nil || !out.ActualCompletion.Equal(completion) {
		t.Errorf("applied completion = %v, want %v", out.ActualCompletion, completion)
	}
	// Original stays untouched.
	if committed.Remarks != "initial" || committed.Status != model.TaskPending || committed.ActualCompletion != nil {
		t.Errorf("Apply mutated the committed task: %+v", committed)
	}
}
