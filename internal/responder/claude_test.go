package responder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

type capturedRequest struct {
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content"`
	} `json:"messages"`
}

func newMessagesServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if captured != nil {
			_ = json.Unmarshal(b, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const claudeOK = `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-7-sonnet-latest",
"content":[{"type":"text","text":"Your flight is at 6pm."}],
"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":6}}`

func TestClaude_Generate(t *testing.T) {
	var req capturedRequest
	srv := newMessagesServer(t, http.StatusOK, claudeOK, &req)

	c, err := NewClaude("test-key", "", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	got, err := c.GenerateWithHistory(context.Background(), "when is my flight?", "- my flight is at 6pm",
		[]model.Turn{{Role: model.RoleUser, Content: "hi"}, {Role: model.RoleAssistant, Content: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "Your flight is at 6pm.", got)

	require.Len(t, req.System, 1)
	assert.Contains(t, req.System[0].Text, "- my flight is at 6pm")
	assert.Contains(t, req.System[0].Text, "Do not claim you stored anything.")
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "assistant", req.Messages[1].Role)
	assert.Equal(t, "when is my flight?", req.Messages[2].Content[0].Text)
}

func TestClaude_APIError(t *testing.T) {
	srv := newMessagesServer(t, http.StatusInternalServerError,
		`{"type":"error","error":{"type":"api_error","message":"boom"}}`, nil)

	c, err := NewClaude("test-key", "claude-3-7-sonnet-latest", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "x", "")
	assert.Error(t, err)
}

func TestNewClaude_RequiresKey(t *testing.T) {
	_, err := NewClaude("", "")
	assert.Error(t, err)
}
