package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/seasonplan/internal/model"
)

// HTTPClient implements PlanClient using the seasonplan HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Seasons ---

func (c *HTTPClient) CreateSeason(ctx context.Context, req *CreateSeasonRequest) (*model.Season, error) {
	var season model.Season
	if err := c.doJSON(ctx, http.MethodPost, "/v1/seasons", req, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

func (c *HTTPClient) ListSeasons(ctx context.Context) (*ListSeasonsResponse, error) {
	var resp ListSeasonsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) FetchSeason(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons/"+url.PathEscape(id), nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *HTTPClient) UpdateSeasonDetails(ctx context.Context, id string, req *UpdateSeasonDetailsRequest) (*model.Season, error) {
	var season model.Season
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/seasons/"+url.PathEscape(id), req, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

func (c *HTTPClient) UpdateSeasonStatus(ctx context.Context, id string, actor ActorRef, status string) (*model.Season, error) {
	body := map[string]any{"actor": actor, "status": status}
	var season model.Season
	if err := c.doJSON(ctx, http.MethodPut, "/v1/seasons/"+url.PathEscape(id)+"/status", body, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// --- Tasks ---

func (c *HTTPClient) CreateTask(ctx context.Context, seasonID string, req *CreateTaskRequest) (*model.Task, error) {
	var task model.Task
	if err := c.doJSON(ctx, http.MethodPost, "/v1/seasons/"+url.PathEscape(seasonID)+"/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, seasonID, taskID string, req *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	path := "/v1/seasons/" + url.PathEscape(seasonID) + "/tasks/" + url.PathEscape(taskID)
	var resp UpdateTaskResponse
	if err := c.doJSON(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Derived views ---

func (c *HTTPClient) GetTimeline(ctx context.Context, seasonID string) (*TimelineResponse, error) {
	var resp TimelineResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons/"+url.PathEscape(seasonID)+"/timeline", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetActionable(ctx context.Context, seasonID string) (*ActionableResponse, error) {
	var resp ActionableResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons/"+url.PathEscape(seasonID)+"/actionable", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Events ---

func (c *HTTPClient) GetEvents(ctx context.Context, seasonID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons/"+url.PathEscape(seasonID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server. Reason carries the
// machine-readable code for authorization denials and edit rejections, when
// the server provided one.
type APIError struct {
	StatusCode int
	Message    string
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error, Reason: errResp.Reason}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
