package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stepping_debug/internal/timeline"
)

const (
	DefaultEndpoint = "https://bigquery.googleapis.com/bigquery/v2"
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 1 << 16
)

// Config holds the connection settings for the query service.
type Config struct {
	Endpoint  string
	ProjectID string
	APIKey    string
	Token     string // OAuth access token sent as Bearer
	Timeout   time.Duration
}

// Client executes queries through the jobs.query REST call.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient returns a client; a nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// apiError is the error envelope of Google JSON APIs.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Query runs a standard-SQL query and returns the raw response.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	if c.cfg.ProjectID == "" {
		return nil, fmt.Errorf("query: project id is not configured")
	}
	body, err := json.Marshal(QueryRequest{
		Query:        query,
		UseLegacySQL: false,
		TimeoutMs:    c.cfg.Timeout.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("query failed with %d %s: %s", resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("query failed with status %d", resp.StatusCode)
	}

	var out QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return &out, nil
}

// SteppingRows runs SteppingQuery and decodes the result.
func (c *Client) SteppingRows(ctx context.Context) ([]timeline.ResultRow, error) {
	resp, err := c.Query(ctx, SteppingQuery)
	if err != nil {
		return nil, err
	}
	return DecodeSteppingRows(resp)
}

func (c *Client) queryURL() string {
	u := c.cfg.Endpoint + "/projects/" + url.PathEscape(c.cfg.ProjectID) + "/queries"
	if c.cfg.APIKey != "" {
		u += "?" + url.Values{"key": {c.cfg.APIKey}}.Encode()
	}
	return u
}
