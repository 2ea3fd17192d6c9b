// Package vapi is a minimal client for the Vapi call/workflow REST API.
package vapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// APIError carries the status, endpoint and body of a failed Vapi call.
type APIError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vapi API error %d for %s: %s", e.Status, e.Endpoint, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return NewClientWithHTTPClient(baseURL, apiKey, &http.Client{Timeout: 30 * time.Second})
}

func NewClientWithHTTPClient(baseURL, apiKey string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

// Workflow is the simplified listing shape exposed to callers.
type Workflow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListWorkflows fetches workflows, normalizing both the bare-list and the
// {"items": [...]} response shapes.
func (c *Client) ListWorkflows(ctx context.Context, page, limit *int) ([]Workflow, error) {
	endpoint := "/workflow"
	params := url.Values{}
	if page != nil {
		params.Set("page", strconv.Itoa(*page))
	}
	if limit != nil {
		params.Set("limit", strconv.Itoa(*limit))
	}
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, target, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Items []Workflow `json:"items"`
	}
	if err := sonic.Unmarshal(body, &wrapped); err == nil && wrapped.Items != nil {
		return wrapped.Items, nil
	}

	var workflows []Workflow
	if err := sonic.Unmarshal(body, &workflows); err != nil {
		return []Workflow{}, nil
	}
	return workflows, nil
}

// StartCallParams configures a workflow-backed call.
type StartCallParams struct {
	WorkflowID     string
	CustomerNumber string
	PhoneNumberID  string
}

// CallResult is the simplified response from creating a call.
type CallResult struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Raw    map[string]any `json:"raw"`
}

// StartWorkflowCall creates a call that runs the given workflow. When a
// customer number is present the call is an outbound phone call.
func (c *Client) StartWorkflowCall(ctx context.Context, params StartCallParams) (*CallResult, error) {
	endpoint := "/call"

	// Call names are capped at 40 chars by the API.
	shortID := params.WorkflowID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	payload := map[string]any{
		"workflowId": params.WorkflowID,
		"name":       "wf:" + shortID,
	}
	if params.PhoneNumberID != "" {
		payload["phoneNumberId"] = params.PhoneNumberID
	}
	if params.CustomerNumber != "" {
		payload["customer"] = map[string]any{"number": params.CustomerNumber}
		payload["type"] = "outboundPhoneCall"
	}

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+endpoint, endpoint, encoded)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return &CallResult{Raw: map[string]any{"body": string(body)}}, nil
	}

	result := &CallResult{Raw: raw}
	if id, ok := raw["id"].(string); ok {
		result.ID = id
	}
	if status, ok := raw["status"].(string); ok {
		result.Status = status
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, target, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint, Body: string(body)}
	}
	return body, nil
}
