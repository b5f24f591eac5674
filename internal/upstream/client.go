// Package upstream talks to the portfolio backend that owns tasks, articles and
// admin sessions. The assistant only reads from it.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// Client reads the Task Store and Content Store and verifies admin tokens.
type Client struct {
	client *resty.Client
	token  string
}

// New creates a client for the backend at baseURL. token is forwarded on task
// reads, which the backend guards; timeout bounds each request.
func New(baseURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{client: c, token: token}
}

// taskWire / articleWire structs for JSON binding

type taskWire struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Deadline  *flexTime `json:"deadline"`
	Completed bool      `json:"completed"`
	Priority  string    `json:"priority"`
}

type articleWire struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Published bool         `json:"published"`
	Likes     int          `json:"likes"`
	Comments  commentCount `json:"comments"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

// ListTasks returns every task known to the Task Store.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	req := c.client.R().SetContext(ctx)
	if c.token != "" {
		req.SetQueryParam("token", c.token)
	}
	resp, err := req.Get("/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("%w: tasks request: %v", model.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: tasks status %d", model.ErrUpstreamUnavailable, resp.StatusCode())
	}

	var wire []taskWire
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("%w: decode tasks: %v", model.ErrUpstreamUnavailable, err)
	}
	out := make([]model.Task, 0, len(wire))
	for _, w := range wire {
		t := model.Task{ID: w.ID, Title: w.Title, Completed: w.Completed, Priority: w.Priority}
		if w.Deadline != nil && !w.Deadline.IsZero() {
			d := w.Deadline.Time
			t.Deadline = &d
		}
		out = append(out, t)
	}
	return out, nil
}

// ListArticles returns every article, drafts included.
func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	resp, err := c.client.R().SetContext(ctx).Get("/api/articles")
	if err != nil {
		return nil, fmt.Errorf("%w: articles request: %v", model.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: articles status %d", model.ErrUpstreamUnavailable, resp.StatusCode())
	}

	var wire []articleWire
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("%w: decode articles: %v", model.ErrUpstreamUnavailable, err)
	}
	out := make([]model.Article, 0, len(wire))
	for _, w := range wire {
		out = append(out, model.Article{
			ID:        w.ID,
			Title:     w.Title,
			Published: w.Published,
			Likes:     w.Likes,
			Comments:  int(w.Comments),
		})
	}
	return out, nil
}

// VerifyToken asks the backend whether token is an active admin session.
// A 401 is a definite "no"; any other failure is reported as an error.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		Get("/api/auth/verify")
	if err != nil {
		return false, fmt.Errorf("%w: verify request: %v", model.ErrUpstreamUnavailable, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("%w: verify status %d", model.ErrUpstreamUnavailable, resp.StatusCode())
	}

	var vr verifyResponse
	if err := json.Unmarshal(resp.Body(), &vr); err != nil {
		return false, fmt.Errorf("%w: decode verify: %v", model.ErrUpstreamUnavailable, err)
	}
	return vr.Valid, nil
}
