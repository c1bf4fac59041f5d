// Package client is the HTTP client the CLI, TUI and MCP server use to
// talk to the daybook API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/daybookhq/daybook/internal/analysis"
	"github.com/daybookhq/daybook/internal/config"
	"github.com/daybookhq/daybook/internal/models"
)

const defaultBaseURL = "http://localhost:8080"

// Client talks to the daybook API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API, which covers both
// missing records and the soft "no ongoing activity" signal.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// NewClient builds a client from the CLI config, the keyring-stored API
// key, and the DAYBOOK_API_URL override.
func NewClient() *Client {
	baseURL := os.Getenv("DAYBOOK_API_URL")
	if baseURL == "" {
		if cfg, err := config.LoadCLIConfig(); err == nil && cfg.APIBaseURL != "" {
			baseURL = cfg.APIBaseURL
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		APIKey:  config.LoadAPIKey(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) request(method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Ping checks API reachability.
func (c *Client) Ping() error {
	return c.request(http.MethodGet, "/ping", nil, nil)
}

// AuthResult is the response of register and login.
type AuthResult struct {
	UserID string `json:"user_id"`
	APIKey string `json:"api_key"`
}

// Register creates an account and returns its API key.
func (c *Client) Register(email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.request(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login verifies credentials and returns a fresh API key.
func (c *Client) Login(email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StartActivityRequest mirrors the timeline start DTO.
type StartActivityRequest struct {
	Content        string   `json:"content"`
	TargetDuration *float64 `json:"target_duration,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	AllowParallel  bool     `json:"allow_parallel"`
	ParallelGroup  *string  `json:"parallel_group,omitempty"`
	Priority       int      `json:"priority,omitempty"`
}

// StartActivity begins a new activity.
func (c *Client) StartActivity(req StartActivityRequest) (*models.Memory, error) {
	var activity models.Memory
	if err := c.request(http.MethodPost, "/v1/timeline/start", req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// EndActivity closes the ongoing activity. A 404 means nothing was
// ongoing; check with IsNotFound.
func (c *Client) EndActivity(note string) (*models.Memory, error) {
	var activity models.Memory
	err := c.request(http.MethodPost, "/v1/timeline/end", map[string]string{"content": note}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// DailyTimeline fetches the timeline for a date ("" means today).
func (c *Client) DailyTimeline(date string) ([]models.Memory, error) {
	endpoint := "/v1/timeline/daily"
	if date != "" {
		endpoint += "?date=" + date
	}
	var records []models.Memory
	if err := c.request(http.MethodGet, endpoint, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CurrentActivities fetches all ongoing activities.
func (c *Client) CurrentActivities() ([]models.Memory, error) {
	var records []models.Memory
	if err := c.request(http.MethodGet, "/v1/timeline/current", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Matter mirrors the matter response DTO.
type Matter struct {
	ID             string   `json:"id"`
	Content        string   `json:"content"`
	Description    string   `json:"description,omitempty"`
	TargetMinutes  float64  `json:"target_minutes"`
	ActualMinutes  float64  `json:"actual_minutes"`
	CompletionRate *float64 `json:"completion_rate,omitempty"`
	Date           string   `json:"date"`
	Tags           []string `json:"tags"`
}

// CreateMatterRequest mirrors the matter create DTO.
type CreateMatterRequest struct {
	Content       string   `json:"content"`
	TargetMinutes float64  `json:"target_minutes"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// CreateMatter registers an important matter for today.
func (c *Client) CreateMatter(req CreateMatterRequest) (*Matter, error) {
	var matter Matter
	if err := c.request(http.MethodPost, "/v1/corefocus/important", req, &matter); err != nil {
		return nil, err
	}
	return &matter, nil
}

// DailyMatters fetches the matters for a date ("" means today).
func (c *Client) DailyMatters(date string) ([]Matter, error) {
	endpoint := "/v1/corefocus/important/daily"
	if date != "" {
		endpoint += "?date=" + date
	}
	var matters []Matter
	if err := c.request(http.MethodGet, endpoint, nil, &matters); err != nil {
		return nil, err
	}
	return matters, nil
}

// StartMatterActivity starts an activity under a matter.
func (c *Client) StartMatterActivity(matterID, note string) (*models.Memory, error) {
	var activity models.Memory
	err := c.request(http.MethodPost, "/v1/corefocus/important/"+matterID+"/start",
		map[string]string{"content": note}, &activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// EndMatterResult is the response of ending a matter activity.
type EndMatterResult struct {
	Activity       models.Memory `json:"activity"`
	CompletionRate *float64      `json:"completion_rate"`
}

// EndMatterActivity ends the ongoing activity and reports the matter's
// fresh completion rate.
func (c *Client) EndMatterActivity(matterID, note string) (*EndMatterResult, error) {
	var result EndMatterResult
	err := c.request(http.MethodPost, "/v1/corefocus/important/"+matterID+"/end",
		map[string]string{"content": note}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MatterActivities is a matter with its correlated activities.
type MatterActivities struct {
	Matter         Matter          `json:"matter"`
	Activities     []models.Memory `json:"activities"`
	TotalSeconds   float64         `json:"total_seconds"`
	CompletionRate *float64        `json:"completion_rate"`
}

// GetMatterActivities fetches a matter with its correlated activities.
func (c *Client) GetMatterActivities(matterID string) (*MatterActivities, error) {
	var result MatterActivities
	err := c.request(http.MethodGet, "/v1/corefocus/important/"+matterID+"/activities", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Goal mirrors the goal response DTO.
type Goal struct {
	ID              string     `json:"id"`
	Content         string     `json:"content"`
	Description     string     `json:"description,omitempty"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
	TargetValue     *float64   `json:"target_value,omitempty"`
	CurrentValue    float64    `json:"current_value"`
	CompletionRate  *float64   `json:"completion_rate,omitempty"`
	MilestonePoints []float64  `json:"milestone_points,omitempty"`
	ProgressType    string     `json:"progress_type,omitempty"`
	Tags            []string   `json:"tags"`
}

// CreateGoalRequest mirrors the goal create DTO.
type CreateGoalRequest struct {
	Content         string    `json:"content"`
	Description     string    `json:"description,omitempty"`
	TargetDate      string    `json:"target_date,omitempty"`
	TargetValue     *float64  `json:"target_value,omitempty"`
	ProgressType    string    `json:"progress_type,omitempty"`
	MilestonePoints []float64 `json:"milestone_points,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// CreateGoal registers a long-term goal.
func (c *Client) CreateGoal(req CreateGoalRequest) (*Goal, error) {
	var goal Goal
	if err := c.request(http.MethodPost, "/v1/dreams", req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals fetches the goals, optionally including completed ones.
func (c *Client) ListGoals(includeCompleted bool) ([]Goal, error) {
	endpoint := "/v1/dreams"
	if includeCompleted {
		endpoint += "?include_completed=true"
	}
	var goals []Goal
	if err := c.request(http.MethodGet, endpoint, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal fetches a single goal.
func (c *Client) GetGoal(goalID string) (*Goal, error) {
	var goal Goal
	if err := c.request(http.MethodGet, "/v1/dreams/"+goalID, nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ProgressResult is the response of a progress update.
type ProgressResult struct {
	Goal           Goal     `json:"goal"`
	CompletionRate *float64 `json:"completion_rate"`
}

// UpdateGoalProgress records a progress value on a goal.
func (c *Client) UpdateGoalProgress(goalID string, currentValue float64, note string) (*ProgressResult, error) {
	var result ProgressResult
	err := c.request(http.MethodPost, "/v1/dreams/"+goalID+"/progress", map[string]interface{}{
		"current_value": currentValue,
		"note":          note,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GoalHistory fetches the goal's progress log entries.
func (c *Client) GoalHistory(goalID string) ([]models.Memory, error) {
	var entries []models.Memory
	if err := c.request(http.MethodGet, "/v1/dreams/"+goalID+"/history", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Analyze runs the server-side text analyzer.
func (c *Client) Analyze(text string) (*analysis.Result, error) {
	var result analysis.Result
	if err := c.request(http.MethodPost, "/v1/memories/analyze", map[string]string{"text": text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
