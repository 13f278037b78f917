// Package planner maintains a client-side working copy of one season: the
// task graph, the derived reference timeline, and the edit loop that proposes
// changes to the server and swaps in the authoritative snapshot it returns.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/groblegark/seasonplan/internal/client"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/plan"
)

// ErrBusy is returned when a mutation is proposed while another one is still
// in flight. The session allows a single outstanding mutation at a time.
var ErrBusy = errors.New("another change is already in progress")

// ErrNotLoaded is returned when an operation needs a snapshot and none has
// been loaded yet.
var ErrNotLoaded = errors.New("no season loaded")

// OutcomeKind tags the result of a proposed edit.
type OutcomeKind string

const (
	// OutcomeApplied means the server accepted the edit and the session now
	// holds the post-edit snapshot.
	OutcomeApplied OutcomeKind = "applied"
	// OutcomeRejected means the edit failed validation (locally or on the
	// server); nothing changed.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeDenied means authorization refused the edit; nothing changed.
	OutcomeDenied OutcomeKind = "denied"
	// OutcomeFailed means a transport or server error prevented a verdict.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of ProposeEdit. Exactly one of the detail fields is
// set, matching Kind: Reason for denials, Rejection for validation failures,
// Err for transport errors. Message is always safe to show.
type Outcome struct {
	Kind      OutcomeKind
	Message   string
	Reason    plan.Reason
	Rejection *plan.Rejection
	Err       error
}

// Session is the stateful working copy of one season. The committed snapshot
// is only ever replaced wholesale with what the server returns; proposed
// edits never mutate it locally.
type Session struct {
	client client.PlanClient
	actor  model.Actor

	mu       sync.Mutex
	busy     bool
	season   *model.Season
	graph    *plan.Graph
	timeline plan.Timeline
}

// NewSession creates a session acting as the given actor.
func NewSession(c client.PlanClient, actor model.Actor) *Session {
	return &Session{client: c, actor: actor}
}

// Load fetches the season snapshot, rebuilds the task graph, and derives the
// reference timeline. Any previously loaded state is discarded.
func (s *Session) Load(ctx context.Context, seasonID string) error {
	snap, err := s.client.FetchSeason(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("fetching season %s: %w", seasonID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(snap.Season, snap.Tasks)
	return nil
}

// replaceLocked swaps in a new snapshot and rederives graph and timeline.
// Callers must hold s.mu.
func (s *Session) replaceLocked(season *model.Season, tasks []*model.Task) {
	s.season = season
	s.graph = plan.NewGraph(tasks)
	s.timeline = plan.ResolveTimeline(s.graph, season.CreatedAt)
}

// Season returns the loaded season, or nil before Load.
func (s *Session) Season() *model.Season {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.season
}

// Tasks returns the task collection in display order.
func (s *Session) Tasks() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return nil
	}
	return s.graph.Tasks()
}

// Task returns the task with the given ID from the loaded snapshot.
func (s *Session) Task(taskID string) (*model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return nil, false
	}
	return s.graph.ByID(taskID)
}

// Timeline returns the derived reference timeline.
func (s *Session) Timeline() plan.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline
}

// IsActionable reports whether the task with the given ID is actionable.
func (s *Session) IsActionable(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return false
	}
	t, ok := s.graph.ByID(taskID)
	if !ok {
		return false
	}
	return plan.IsActionable(t, s.graph)
}

// CanEdit returns the authorization decision for editing the given task as
// the session's actor. It drives edit affordances before anything is sent.
func (s *Session) CanEdit(taskID string) plan.Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil || s.season == nil {
		return plan.Decision{Allowed: false}
	}
	t, ok := s.graph.ByID(taskID)
	if !ok {
		return plan.Decision{Allowed: false}
	}
	return plan.CanEdit(s.actor, t, s.season, s.graph)
}

// Busy reports whether a mutation is currently in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// EditRequest carries the user's proposed changes to one task. Nil pointer
// fields mean "don't change"; ClearCompletion removes the completion date.
type EditRequest struct {
	Remarks          *string
	ActualCompletion *time.Time
	ClearCompletion  bool
}

// ProposeEdit validates the edit locally, submits it, and on success replaces
// the committed snapshot with the server's. At most one mutation may be in
// flight; a second proposal returns a failed outcome with ErrBusy.
//
// The committed snapshot is never touched until the server confirms, so a
// failed or rejected proposal leaves the session exactly as it was.
func (s *Session) ProposeEdit(ctx context.Context, taskID string, req EditRequest) Outcome {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeFailed, Message: ErrBusy.Error(), Err: ErrBusy}
	}
	if s.graph == nil || s.season == nil {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeFailed, Message: ErrNotLoaded.Error(), Err: ErrNotLoaded}
	}

	committed, ok := s.graph.ByID(taskID)
	if !ok {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeFailed, Message: "task " + taskID + " not found", Err: fmt.Errorf("task %s not found", taskID)}
	}

	if d := plan.CanEdit(s.actor, committed, s.season, s.graph); !d.Allowed {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeDenied, Message: d.Reason.Message(), Reason: d.Reason}
	}

	// Run the edit reduction locally to catch rejections without a round
	// trip. The server runs the same reduction again on its own state.
	proposed := *committed
	if req.Remarks != nil {
		proposed.Remarks = *req.Remarks
	}
	if req.ClearCompletion {
		proposed.ActualCompletion = nil
	} else if req.ActualCompletion != nil {
		completion := *req.ActualCompletion
		proposed.ActualCompletion = &completion
	}
	patch, rejection := plan.ApplyEdit(committed, &proposed)
	if rejection != nil {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeRejected, Message: rejection.Message, Rejection: rejection}
	}
	if patch.Empty() {
		s.mu.Unlock()
		return Outcome{Kind: OutcomeApplied, Message: "no changes"}
	}

	s.busy = true
	seasonID := s.season.ID
	s.mu.Unlock()

	resp, err := s.client.UpdateTask(ctx, seasonID, taskID, &client.UpdateTaskRequest{
		Actor:            s.actorRef(),
		Remarks:          req.Remarks,
		ActualCompletion: req.ActualCompletion,
		ClearCompletion:  req.ClearCompletion,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		return s.classifyError(err)
	}

	s.replaceLocked(resp.Season, resp.Tasks)
	return Outcome{Kind: OutcomeApplied, Message: resp.Message}
}

// ChangeStatus submits a season status change and replaces the season record
// on success. It shares the single-mutation gate with ProposeEdit.
func (s *Session) ChangeStatus(ctx context.Context, status model.SeasonStatus) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.season == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if !plan.CanChangeSeasonStatus(s.actor) {
		s.mu.Unlock()
		return errors.New("only admins and planners may change season status")
	}
	if err := plan.ValidateStatusChange(s.season.Status, status); err != nil {
		s.mu.Unlock()
		return err
	}
	s.busy = true
	seasonID := s.season.ID
	s.mu.Unlock()

	season, err := s.client.UpdateSeasonStatus(ctx, seasonID, s.actorRef(), status.String())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return fmt.Errorf("changing season status: %w", err)
	}
	s.season = season
	return nil
}

// Refresh re-fetches the snapshot. It holds the single-mutation gate for the
// duration of the fetch so a refresh cannot race an in-flight edit's snapshot
// replacement, and an edit proposed mid-refresh reports busy.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.season == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	s.busy = true
	seasonID := s.season.ID
	s.mu.Unlock()

	snap, err := s.client.FetchSeason(ctx, seasonID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return fmt.Errorf("fetching season %s: %w", seasonID, err)
	}
	s.replaceLocked(snap.Season, snap.Tasks)
	return nil
}

func (s *Session) actorRef() client.ActorRef {
	return client.ActorRef{
		Name:       s.actor.Name,
		Role:       s.actor.Role.String(),
		Department: s.actor.Department,
	}
}

// classifyError maps a transport error onto an outcome: 403s become denials
// and 400s with a rejection reason become rejections, so server-side verdicts
// read the same as local ones. Callers must hold s.mu.
func (s *Session) classifyError(err error) Outcome {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 403 && apiErr.Reason != "":
			return Outcome{Kind: OutcomeDenied, Message: apiErr.Message, Reason: plan.Reason(apiErr.Reason)}
		case apiErr.StatusCode == 400 && apiErr.Reason != "":
			return Outcome{
				Kind:      OutcomeRejected,
				Message:   apiErr.Message,
				Rejection: &plan.Rejection{Reason: plan.RejectReason(apiErr.Reason), Message: apiErr.Message},
			}
		}
	}
	return Outcome{Kind: OutcomeFailed, Message: err.Error(), Err: err}
}
