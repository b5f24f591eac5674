package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithRetry(3, time.Millisecond, 5*time.Millisecond)}, opts...)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsEmptyURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	_, err := New("http://x", WithHTTPTimeout(0))
	assert.Error(t, err)
	_, err = New("http://x", WithRetry(0, time.Millisecond, time.Second))
	assert.Error(t, err)
	_, err = New("http://x", WithRetry(2, time.Second, time.Millisecond))
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	var got map[string]any
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/chat", r.URL.Path)
		auth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got)
		_, _ = w.Write([]byte(`{"response":"Hello! How can I help you today?"}`))
	}, WithToken("tok"))

	reply, err := c.Chat(context.Background(), "hi", []Turn{{Role: "user", Content: "earlier"}})
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you today?", reply)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "hi", got["message"])
	assert.Len(t, got["history"], 1)
}

func TestListMemoryAndLimit(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"01","content":"likes tea","created_at":"2026-01-02T03:04:05Z","tags":["chat"]}]`))
	})

	entries, err := c.ListMemory(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "likes tea", entries[0].Content)
	assert.Equal(t, []string{"chat"}, entries[0].Tags)
	assert.Equal(t, "limit=7", query)

	_, err = c.ListMemory(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestRememberClearStatsSuggestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/ai/memory":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"01","content":"standup at 9","tags":["manual"]}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"removed":4}`))
		case r.URL.Path == "/api/ai/stats":
			_, _ = w.Write([]byte(`{"memories":2}`))
		case r.URL.Path == "/api/ai/suggestions":
			_, _ = w.Write([]byte(`{"suggestions":[{"type":"info","message":"hi"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	e, err := c.Remember(ctx, "standup at 9", nil)
	require.NoError(t, err)
	assert.Equal(t, "01", e.ID)

	n, err := c.ClearMemory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Memories)

	sugs, err := c.Suggestions(ctx)
	require.NoError(t, err)
	require.Len(t, sugs, 1)
	assert.Equal(t, "hi", sugs[0].Message)
}

func TestGetRetriesTemporaryFailures(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"memories":1}`))
	})

	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, st.Memories)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestErrorsCarryStatusAndMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Bad Request","code":400,"message":"message cannot be empty"}`))
	})

	_, err := c.Chat(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, IsBadRequest(err))
	assert.False(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "message cannot be empty")
}
