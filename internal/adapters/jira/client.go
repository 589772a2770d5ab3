// Package jira files bug reports as Jira issues over the REST v3 API.
// Without complete credentials the client runs in offline mode and
// returns simulated issue keys.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"github.com/example/smartqa/internal/config"
	"github.com/example/smartqa/internal/ports/secondary"
)

// DemoBaseURL is used for simulated issue links in offline mode.
const DemoBaseURL = "https://demo.atlassian.net"

// Client implements secondary.IssueTracker.
type Client struct {
	baseURL    string
	email      string
	token      string
	projectKey string
	offline    bool
	http       *http.Client
	logger     *slog.Logger
}

// NewClient creates a client from cfg. Missing credentials select offline mode.
func NewClient(cfg config.JiraConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		email:      cfg.Email,
		token:      cfg.APIToken,
		projectKey: cfg.ProjectKey,
		offline:    !cfg.Configured(),
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Offline reports whether the client simulates issue creation.
func (c *Client) Offline() bool {
	return c.offline
}

type myselfResponse struct {
	DisplayName string `json:"displayName"`
}

// TestConnection checks the credentials against /rest/api/3/myself.
func (c *Client) TestConnection(ctx context.Context) secondary.ConnectionResult {
	if c.offline {
		return secondary.ConnectionResult{
			Success:     true,
			Message:     "Jira is not configured; running in offline demo mode",
			OfflineMode: true,
		}
	}

	resp, err := c.do(ctx, http.MethodGet, "/rest/api/3/myself", nil)
	if err != nil {
		c.logger.Error("jira connection test failed", "error", err)
		return secondary.ConnectionResult{Message: fmt.Sprintf("jira connection failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("jira connection test rejected", "status_code", resp.StatusCode, "response_body", string(body))
		return secondary.ConnectionResult{Message: fmt.Sprintf("jira rejected credentials: HTTP %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var me myselfResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		c.logger.Warn("failed to decode jira user", "error", err)
	}
	name := me.DisplayName
	if name == "" {
		name = c.email
	}
	return secondary.ConnectionResult{
		Success: true,
		Message: fmt.Sprintf("Connected to Jira as %s", name),
	}
}

type issueFields struct {
	Project     projectRef `json:"project"`
	Summary     string     `json:"summary"`
	Description ADF        `json:"description"`
	IssueType   named      `json:"issuetype"`
	Priority    named      `json:"priority"`
	Labels      []string   `json:"labels"`
}

type projectRef struct {
	Key string `json:"key"`
}

type named struct {
	Name string `json:"name"`
}

type createIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreateIssue files req as a Bug in the configured project.
func (c *Client) CreateIssue(ctx context.Context, req secondary.IssueRequest) secondary.IssueResult {
	if c.offline {
		key := fmt.Sprintf("BUG-%d", 1000+rand.Intn(9000))
		return secondary.IssueResult{
			Success:   true,
			IssueKey:  key,
			IssueURL:  DemoBaseURL + "/browse/" + key,
			Message:   "Simulated issue created (offline demo mode)",
			Simulated: true,
		}
	}

	payload, err := json.Marshal(map[string]issueFields{"fields": c.fields(req)})
	if err != nil {
		return secondary.IssueResult{Message: fmt.Sprintf("failed to encode issue: %v", err)}
	}

	resp, err := c.do(ctx, http.MethodPost, "/rest/api/3/issue", bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("failed to create jira issue", "error", err)
		return secondary.IssueResult{Message: fmt.Sprintf("jira connection failed: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		c.logger.Error("jira rejected issue", "status_code", resp.StatusCode, "response_body", string(body))
		return secondary.IssueResult{Message: fmt.Sprintf("jira rejected issue: HTTP %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var created createIssueResponse
	if err := json.Unmarshal(body, &created); err != nil || created.Key == "" {
		c.logger.Error("unexpected jira create response", "error", err, "response_body", string(body))
		return secondary.IssueResult{Message: "jira returned an unreadable create response"}
	}

	c.logger.Info("jira issue created", "key", created.Key)
	return secondary.IssueResult{
		Success:  true,
		IssueKey: created.Key,
		IssueURL: c.baseURL + "/browse/" + created.Key,
		Message:  fmt.Sprintf("Created issue %s", created.Key),
	}
}

func (c *Client) fields(req secondary.IssueRequest) issueFields {
	labels := []string{"smartqa", "automated"}
	if s := slug.Make(req.ProjectName); s != "" {
		labels = append(labels, s)
	}
	return issueFields{
		Project:     projectRef{Key: c.projectKey},
		Summary:     "[SmartQA] " + req.Title,
		Description: issueDescription(req),
		IssueType:   named{Name: "Bug"},
		Priority:    named{Name: PriorityFor(req.Severity)},
		Labels:      labels,
	}
}

// PriorityFor maps a bug severity to a Jira priority name.
func PriorityFor(severity string) string {
	switch severity {
	case "critical":
		return "Highest"
	case "high":
		return "High"
	case "low":
		return "Low"
	default:
		return "Medium"
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

var _ secondary.IssueTracker = (*Client)(nil)
