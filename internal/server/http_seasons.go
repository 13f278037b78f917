package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/groblegark/seasonplan/internal/events"
	"github.com/groblegark/seasonplan/internal/idgen"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/plan"
)

// createSeasonInput holds parameters for creating a season.
type createSeasonInput struct {
	Name             string   `json:"name"`
	BuyerID          string   `json:"buyer_id,omitempty"`
	Description      string   `json:"description,omitempty"`
	RequireAttention []string `json:"require_attention,omitempty"`
}

// handleCreateSeason handles POST /v1/seasons.
func (s *PlanServer) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	var in createSeasonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := idgen.NewSeasonID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	now := time.Now().UTC()
	season := &model.Season{
		ID:               id,
		Name:             in.Name,
		BuyerID:          in.BuyerID,
		Status:           model.SeasonOpen,
		Description:      in.Description,
		RequireAttention: in.RequireAttention,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := model.ValidateSeason(season); err != nil {
		writeError(w, http.StatusBadRequest, "invalid season: "+err.Error())
		return
	}

	if err := s.store.CreateSeason(r.Context(), season); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create season")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicSeasonCreated, season.ID, "", "", events.SeasonCreated{Season: season})

	writeJSON(w, http.StatusCreated, season)
}

// handleListSeasons handles GET /v1/seasons.
func (s *PlanServer) handleListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.store.ListSeasons(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list seasons")
		return
	}
	if seasons == nil {
		seasons = []*model.Season{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"seasons": seasons,
		"total":   len(seasons),
	})
}

// handleGetSeason handles GET /v1/seasons/{id}: the full snapshot load.
func (s *PlanServer) handleGetSeason(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	season, tasks, _, err := s.loadSnapshot(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load season")
		return
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"season": season,
		"tasks":  tasks,
	})
}

// seasonDetailsInput holds optional season fields; nil means "don't change".
type seasonDetailsInput struct {
	Actor            actorInput `json:"actor"`
	Name             *string    `json:"name,omitempty"`
	BuyerID          *string    `json:"buyer_id,omitempty"`
	Description      *string    `json:"description,omitempty"`
	RequireAttention *[]string  `json:"require_attention,omitempty"`
}

// handleUpdateSeasonDetails handles PATCH /v1/seasons/{id}.
func (s *PlanServer) handleUpdateSeasonDetails(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in seasonDetailsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	season, err := s.store.GetSeason(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get season")
		return
	}

	changes := map[string]any{}
	if in.Name != nil {
		season.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.BuyerID != nil {
		season.BuyerID = *in.BuyerID
		changes["buyer_id"] = *in.BuyerID
	}
	if in.Description != nil {
		season.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.RequireAttention != nil {
		season.RequireAttention = *in.RequireAttention
		changes["require_attention"] = *in.RequireAttention
	}

	if len(changes) == 0 {
		writeJSON(w, http.StatusOK, season)
		return
	}

	if err := model.ValidateSeason(season); err != nil {
		writeError(w, http.StatusBadRequest, "invalid season: "+err.Error())
		return
	}

	season.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateSeason(r.Context(), season); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update season")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicSeasonUpdated, season.ID, "", in.Actor.Name,
		events.SeasonUpdated{Season: season, Changes: changes})

	writeJSON(w, http.StatusOK, season)
}

// seasonStatusInput holds parameters for a season status change.
type seasonStatusInput struct {
	Actor  actorInput `json:"actor"`
	Status string     `json:"status"`
}

// handleUpdateSeasonStatus handles PUT /v1/seasons/{id}/status. Status
// changes are privileged and a transition to the current status is rejected
// as a no-op.
func (s *PlanServer) handleUpdateSeasonStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in seasonStatusInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	actor, err := in.Actor.toActor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !plan.CanChangeSeasonStatus(actor) {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error": "only admins and planners may change season status",
		})
		return
	}

	season, err := s.store.GetSeason(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get season")
		return
	}

	next := model.SeasonStatus(in.Status)
	if err := plan.ValidateStatusChange(season.Status, next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from := season.Status
	season.Status = next
	season.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateSeason(r.Context(), season); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update season")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicSeasonStatusChanged, season.ID, "", actor.Name,
		events.SeasonStatusChanged{Season: season, From: from, To: next})

	writeJSON(w, http.StatusOK, season)
}

// handleGetEvents handles GET /v1/seasons/{id}/events.
func (s *PlanServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	evs, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if evs == nil {
		evs = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": evs,
		"total":  len(evs),
	})
}
