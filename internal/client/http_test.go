package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "")
	return c, srv
}

func TestHTTPClient_CreateSeason(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusCreated,
		responseBody: `{
			"id": "sn-abc123",
			"name": "SS26",
			"buyer_id": "buyer-1",
			"status": "open",
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-15T10:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	season, err := c.CreateSeason(context.Background(), &CreateSeasonRequest{
		Name:    "SS26",
		BuyerID: "buyer-1",
	})
	if err != nil {
		t.Fatalf("CreateSeason() error = %v", err)
	}

	if h.method != http.MethodPost || h.path != "/v1/seasons" {
		t.Errorf("request = %s %s, want POST /v1/seasons", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}

	var reqBody map[string]any
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["name"] != "SS26" {
		t.Errorf("request body name = %v, want 'SS26'", reqBody["name"])
	}

	if season.ID != "sn-abc123" || season.Name != "SS26" {
		t.Errorf("got id=%q name=%q", season.ID, season.Name)
	}
}

func TestHTTPClient_FetchSeason(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"season": {"id": "sn-abc123", "name": "SS26", "status": "open"},
			"tasks": [
				{"id": "tk-a", "season_id": "sn-abc123", "order": "A", "name": "Range plan", "status": "completed"},
				{"id": "tk-b", "season_id": "sn-abc123", "order": "B", "name": "Fit samples", "status": "pending"}
			]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	snap, err := c.FetchSeason(context.Background(), "sn-abc123")
	if err != nil {
		t.Fatalf("FetchSeason() error = %v", err)
	}

	if h.method != http.MethodGet || h.path != "/v1/seasons/sn-abc123" {
		t.Errorf("request = %s %s, want GET /v1/seasons/sn-abc123", h.method, h.path)
	}
	if snap.Season.ID != "sn-abc123" {
		t.Errorf("season.ID = %q", snap.Season.ID)
	}
	if len(snap.Tasks) != 2 || snap.Tasks[0].Order != "A" {
		t.Errorf("got tasks=%v", snap.Tasks)
	}
}

func TestHTTPClient_UpdateSeasonStatus(t *testing.T) {
	h := &testHandler{
		responseBody: `{"id": "sn-abc123", "name": "SS26", "status": "on_hold"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	actor := ActorRef{Name: "alice", Role: "planner"}
	season, err := c.UpdateSeasonStatus(context.Background(), "sn-abc123", actor, "on_hold")
	if err != nil {
		t.Fatalf("UpdateSeasonStatus() error = %v", err)
	}

	if h.method != http.MethodPut || h.path != "/v1/seasons/sn-abc123/status" {
		t.Errorf("request = %s %s, want PUT /v1/seasons/sn-abc123/status", h.method, h.path)
	}
	var reqBody map[string]any
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["status"] != "on_hold" {
		t.Errorf("request body status = %v", reqBody["status"])
	}
	if season.Status != "on_hold" {
		t.Errorf("season.Status = %q", season.Status)
	}
}

func TestHTTPClient_UpdateTask(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"season": {"id": "sn-abc123", "name": "SS26", "status": "open"},
			"tasks": [{"id": "tk-a", "order": "A", "name": "Range plan", "status": "completed"}],
			"message": "task updated"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	completion := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	resp, err := c.UpdateTask(context.Background(), "sn-abc123", "tk-a", &UpdateTaskRequest{
		Actor:            ActorRef{Name: "bob", Role: "member", Department: "merchandising"},
		ActualCompletion: &completion,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if h.method != http.MethodPatch || h.path != "/v1/seasons/sn-abc123/tasks/tk-a" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if resp.Message != "task updated" || len(resp.Tasks) != 1 {
		t.Errorf("got message=%q tasks=%v", resp.Message, resp.Tasks)
	}
}

func TestHTTPClient_UpdateTask_DeniedCarriesReason(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusForbidden,
		responseBody: `{"error": "preceding tasks are not all completed", "reason": "predecessors_incomplete"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	remarks := "early start"
	_, err := c.UpdateTask(context.Background(), "sn-abc123", "tk-b", &UpdateTaskRequest{
		Actor:   ActorRef{Name: "bob", Role: "member", Department: "production"},
		Remarks: &remarks,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 403 || apiErr.Reason != "predecessors_incomplete" {
		t.Errorf("got status=%d reason=%q", apiErr.StatusCode, apiErr.Reason)
	}
}

func TestHTTPClient_GetTimeline(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"timeline": {
				"tk-a": {"start": "2026-03-01T00:00:00Z", "end": "2026-03-06T00:00:00Z"}
			},
			"unresolved": [{"task_id": "tk-b", "order": "B", "reason": "unknown predecessor X"}]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.GetTimeline(context.Background(), "sn-abc123")
	if err != nil {
		t.Fatalf("GetTimeline() error = %v", err)
	}

	if h.path != "/v1/seasons/sn-abc123/timeline" {
		t.Errorf("path = %q", h.path)
	}
	if len(resp.Timeline) != 1 {
		t.Errorf("got timeline=%v", resp.Timeline)
	}
	if len(resp.Unresolved) != 1 || resp.Unresolved[0].TaskID != "tk-b" {
		t.Errorf("got unresolved=%v", resp.Unresolved)
	}
}

func TestHTTPClient_GetActionable(t *testing.T) {
	h := &testHandler{
		responseBody: `{"tasks": [{"id": "tk-b", "order": "B", "name": "Fit samples", "status": "pending"}], "total": 1}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.GetActionable(context.Background(), "sn-abc123")
	if err != nil {
		t.Fatalf("GetActionable() error = %v", err)
	}
	if resp.Total != 1 || resp.Tasks[0].ID != "tk-b" {
		t.Errorf("got %v", resp)
	}
}

func TestHTTPClient_Health(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
}

func TestHTTPClient_AuthHeader(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok"}`}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.auth != "Bearer secret" {
		t.Errorf("authorization = %q, want 'Bearer secret'", h.auth)
	}
}

func TestHTTPClient_ErrorWithoutJSONBody(t *testing.T) {
	h := &testHandler{statusCode: http.StatusBadGateway, responseBody: "upstream down"}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.ListSeasons(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != 502 || apiErr.Message != "upstream down" {
		t.Errorf("got status=%d message=%q", apiErr.StatusCode, apiErr.Message)
	}
}
