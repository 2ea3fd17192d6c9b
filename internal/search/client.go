// Package search issues the outbound web-search call for the pipeline.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var (
	// ErrTimeout reports that the search transport timed out.
	ErrTimeout = errors.New("search timed out")
	// ErrUnavailable reports any other transport or non-success failure.
	ErrUnavailable = errors.New("search unavailable")
)

// UnavailableError carries the status and body of a failed search call for
// diagnostics. It matches ErrUnavailable under errors.Is.
type UnavailableError struct {
	Status int
	Body   string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("search request failed: %d - %s", e.Status, e.Body)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// Config holds settings for the OpenAI responses endpoint used for search.
type Config struct {
	APIKey  string
	BaseURL string // default https://api.openai.com/v1
	Model   string // default o4-mini
	Timeout time.Duration
}

// Client calls the OpenAI responses API with the web_search_preview tool and
// an approximate user location. One attempt per invocation; retry policy
// belongs to the caller.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Minute
	}
	return NewClientWithHTTPClient(cfg, &http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient constructs a Client using the supplied HTTP client.
// This is useful for overriding the default timeout.
func NewClientWithHTTPClient(cfg Config, client *http.Client) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "o4-mini"
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

type userLocation struct {
	Type    string `json:"type"`
	Country string `json:"country"`
	City    string `json:"city"`
	Region  string `json:"region"`
}

type searchTool struct {
	Type         string       `json:"type"`
	UserLocation userLocation `json:"user_location"`
}

type searchRequest struct {
	Model string       `json:"model"`
	Tools []searchTool `json:"tools"`
	Input string       `json:"input"`
}

// Search runs one query and returns the raw response body. The body is
// usually JSON-shaped but often markdown-polluted; cleaning it up is the
// result-cleaner agent's job.
func (c *Client) Search(ctx context.Context, query, city, region, country string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("%w: API key is missing", ErrUnavailable)
	}
	if country == "" {
		country = "us"
	}

	input := query + "\n" + `return a JSON object with this exact structure:
{
    "Business_Name": {
        "number": "<phone_number>",
        "hours": "<opening_hours>",
        "stars": <rating>,
        "price_range": "<price_range>"
    }
}`

	payload, err := sonic.Marshal(searchRequest{
		Model: c.model,
		Tools: []searchTool{{
			Type: "web_search_preview",
			UserLocation: userLocation{
				Type:    "approximate",
				Country: country,
				City:    city,
				Region:  region,
			},
		}},
		Input: input,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if (errors.As(err, &uerr) && uerr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return "", &UnavailableError{Status: resp.StatusCode, Body: string(body)}
	}

	return string(body), nil
}
