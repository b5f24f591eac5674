// Package client is a Go SDK for the assistant REST API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// Re-exported wire types so callers only import this package.
type (
	MemoryEntry = model.MemoryEntry
	Suggestion  = model.Suggestion
	Turn        = model.Turn
	Stats       = model.Stats
)

// Client talks to one assistant service.
type Client struct {
	http        *resty.Client
	maxAttempts int
	baseBackoff time.Duration
	maxInterval time.Duration
}

// New constructs a Client for baseURL. Options are applied in order.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(60*time.Second).
			SetHeader("Accept", "application/json"),
		maxAttempts: 3,
		baseBackoff: 200 * time.Millisecond,
		maxInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Chat sends one utterance and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, message string, history []Turn) (string, error) {
	body := struct {
		Message string `json:"message"`
		History []Turn `json:"history,omitempty"`
	}{Message: message, History: history}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/ai/chat", body, nil, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Suggestions returns the current ranked suggestions.
func (c *Client) Suggestions(ctx context.Context) ([]Suggestion, error) {
	var out struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ai/suggestions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// ListMemory returns recent memories, newest first. limit <= 0 uses the server default.
func (c *Client) ListMemory(ctx context.Context, limit int) ([]MemoryEntry, error) {
	var query map[string]string
	if limit > 0 {
		query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	var out []MemoryEntry
	if err := c.do(ctx, http.MethodGet, "/api/ai/memory", nil, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Remember stores a note directly.
func (c *Client) Remember(ctx context.Context, content string, tags []string) (*MemoryEntry, error) {
	body := struct {
		Content string   `json:"content"`
		Tags    []string `json:"tags,omitempty"`
	}{Content: content, Tags: tags}
	var out MemoryEntry
	if err := c.do(ctx, http.MethodPost, "/api/ai/memory", body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearMemory removes every memory and reports how many were removed.
func (c *Client) ClearMemory(ctx context.Context) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/ai/memory", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Removed, nil
}

// Stats returns memory statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, http.MethodGet, "/api/ai/stats", nil, nil, &out)
	return out, err
}

// do executes one call. Only GETs are retried; writes are never replayed.
func (c *Client) do(ctx context.Context, method, path string, body any, query map[string]string, out any) error {
	retryable := method == http.MethodGet

	op := func() error {
		req := c.http.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		if len(query) > 0 {
			req.SetQueryParams(query)
		}
		resp, err := req.Execute(method, path)
		if err != nil {
			if ctx.Err() != nil || !retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		if resp.IsError() {
			apiErr := newAPIError(resp.StatusCode(), resp.Body())
			if retryable && apiErr.Temporary() {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s %s: %w", method, path, err))
		}
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.baseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = c.maxInterval
	exp.Reset()

	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx))
}
