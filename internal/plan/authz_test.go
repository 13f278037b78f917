package plan

import (
	"testing"

	"github.com/groblegark/seasonplan/internal/model"
)

func openSeason() *model.Season {
	return &model.Season{ID: "sn-1", Name: "Spring", Status: model.SeasonOpen}
}

func TestCanEdit_SeasonNotOpen(t *testing.T) {
	tk := task("a", "A", 1)
	tk.Responsible = []string{"production"}
	g := NewGraph([]*model.Task{tk})
	admin := model.Actor{Name: "root", Role: model.RoleAdmin}

	// Denied for every non-open status, regardless of role.
	for _, status := range []model.SeasonStatus{model.SeasonOnHold, model.SeasonClosed, model.SeasonCanceled} {
		season := openSeason()
		season.Status = status
		if d := CanEdit(admin, tk, season, g); d.Allowed || d.Reason != ReasonSeasonNotOpen {
			t.Errorf("status %s: decision = %+v, want denial with season_not_open", status, d)
		}
	}
}

func TestCanEdit_GuardPrecedence(t *testing.T) {
	completed := task("a", "A", 1)
	completed.Status = model.TaskCompleted
	blocked := task("b", "B", 1)
	blocked.Status = model.TaskBlocked
	gated := task("c", "C", 1, "B") // predecessor B is not completed
	gated.Responsible = []string{"production"}
	free := task("d", "D", 1)
	free.Responsible = []string{"production"}

	g := NewGraph([]*model.Task{completed, blocked, gated, free})
	season := openSeason()

	member := model.Actor{Name: "pat", Role: model.RoleMember, Department: "production"}
	outsider := model.Actor{Name: "kim", Role: model.RoleMember, Department: "finance"}
	planner := model.Actor{Name: "lee", Role: model.RolePlanner, Department: "finance"}

	for _, tc := range []struct {
		name       string
		actor      model.Actor
		task       *model.Task
		want       bool
		wantReason Reason
	}{
		{"member cannot edit completed", member, completed, false, ReasonCompletedLocked},
		{"planner can edit completed", planner, completed, true, ""},
		{"blocked locked even for planner", planner, blocked, false, ReasonBlocked},
		{"pending gated by predecessors", member, gated, false, ReasonPredecessorsIncomplete},
		{"predecessor gate applies to planner too", planner, gated, false, ReasonPredecessorsIncomplete},
		{"responsible member allowed", member, free, true, ""},
		{"outside department denied", outsider, free, false, ReasonNotResponsible},
		{"planner bypasses department check", planner, free, true, ""},
	} {
		d := CanEdit(tc.actor, tc.task, season, g)
		if d.Allowed != tc.want || d.Reason != tc.wantReason {
			t.Errorf("%s: decision = %+v, want allowed=%v reason=%q", tc.name, d, tc.want, tc.wantReason)
		}
	}
}

func TestReason_Message(t *testing.T) {
	for _, r := range []Reason{
		ReasonSeasonNotOpen,
		ReasonCompletedLocked,
		ReasonBlocked,
		ReasonPredecessorsIncomplete,
		ReasonNotResponsible,
	} {
		if r.Message() == string(r) {
			t.Errorf("Reason %q has no human-readable message", r)
		}
	}
}

func TestCanChangeSeasonStatus(t *testing.T) {
	if !CanChangeSeasonStatus(model.Actor{Role: model.RoleAdmin}) {
		t.Error("admin should be able to change season status")
	}
	if !CanChangeSeasonStatus(model.Actor{Role: model.RolePlanner}) {
		t.Error("planner should be able to change season status")
	}
	if CanChangeSeasonStatus(model.Actor{Role: model.RoleMember}) {
		t.Error("member should not be able to change season status")
	}
}

func TestValidateStatusChange(t *testing.T) {
	if err := ValidateStatusChange(model.SeasonOpen, model.SeasonOnHold); err != nil {
		t.Errorf("open→on_hold: unexpected error %v", err)
	}
	if err := ValidateStatusChange(model.SeasonClosed, model.SeasonOpen); err != nil {
		t.Errorf("closed→open: unexpected error %v", err)
	}
	if err := ValidateStatusChange(model.SeasonOpen, model.SeasonOpen); err != ErrStatusUnchanged {
		t.Errorf("open→open: error = %v, want ErrStatusUnchanged", err)
	}
	if err := ValidateStatusChange(model.SeasonOpen, model.SeasonStatus("archived")); err == nil {
		t.Error("invalid target status should be rejected")
	}
}
