package handlers

import (
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/client"
)

type fakeAssistant struct {
	err       error
	lastLimit int
	lastTags  []string
	entries   []client.MemoryEntry
}

func (f *fakeAssistant) Chat(ctx context.Context, message string, history []client.Turn) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "echo: " + message, nil
}

func (f *fakeAssistant) Suggestions(ctx context.Context) ([]client.Suggestion, error) {
	return []client.Suggestion{{Type: "info", Message: "tell me something"}}, f.err
}

func (f *fakeAssistant) ListMemory(ctx context.Context, limit int) ([]client.MemoryEntry, error) {
	f.lastLimit = limit
	return f.entries, f.err
}

func (f *fakeAssistant) Remember(ctx context.Context, content string, tags []string) (*client.MemoryEntry, error) {
	f.lastTags = tags
	if f.err != nil {
		return nil, f.err
	}
	return &client.MemoryEntry{ID: "01", Content: content, Tags: tags}, nil
}

func (f *fakeAssistant) Stats(ctx context.Context) (client.Stats, error) {
	return client.Stats{Memories: len(f.entries)}, f.err
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestChatTool(t *testing.T) {
	h := NewAssistantHandler(&fakeAssistant{}, zerolog.Nop())

	res, err := h.handleChat(context.Background(), call(map[string]any{"message": "hello"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "echo: hello", text(t, res))

	res, err = h.handleChat(context.Background(), call(map[string]any{"message": "  "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestChatToolReportsFailure(t *testing.T) {
	h := NewAssistantHandler(&fakeAssistant{err: errors.New("boom")}, zerolog.Nop())
	res, err := h.handleChat(context.Background(), call(map[string]any{"message": "hello"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "boom")
}

func TestListMemoryToolClampsLimit(t *testing.T) {
	fa := &fakeAssistant{entries: []client.MemoryEntry{{ID: "01", Content: "likes tea"}}}
	h := NewAssistantHandler(fa, zerolog.Nop())

	res, err := h.handleListMemory(context.Background(), call(map[string]any{"limit": float64(500)}))
	require.NoError(t, err)
	assert.Equal(t, maxToolLimit, fa.lastLimit)

	var got []client.MemoryEntry
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "likes tea", got[0].Content)

	_, err = h.handleListMemory(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, 10, fa.lastLimit)
}

func TestRememberToolSplitsTags(t *testing.T) {
	fa := &fakeAssistant{}
	h := NewAssistantHandler(fa, zerolog.Nop())

	res, err := h.handleRemember(context.Background(), call(map[string]any{
		"content": "standup at 9",
		"tags":    "work, , daily",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []string{"work", "daily"}, fa.lastTags)

	res, err = h.handleRemember(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSuggestionsAndStatsTools(t *testing.T) {
	h := NewAssistantHandler(&fakeAssistant{entries: make([]client.MemoryEntry, 3)}, zerolog.Nop())

	res, err := h.handleSuggestions(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "tell me something")

	res, err = h.handleStats(context.Background(), call(nil))
	require.NoError(t, err)
	var st client.Stats
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &st))
	assert.Equal(t, 3, st.Memories)
}
