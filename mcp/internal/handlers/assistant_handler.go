package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/client"
)

const maxToolLimit = 50

// Assistant is the subset of the SDK the tools call.
type Assistant interface {
	Chat(ctx context.Context, message string, history []client.Turn) (string, error)
	Suggestions(ctx context.Context) ([]client.Suggestion, error)
	ListMemory(ctx context.Context, limit int) ([]client.MemoryEntry, error)
	Remember(ctx context.Context, content string, tags []string) (*client.MemoryEntry, error)
	Stats(ctx context.Context) (client.Stats, error)
}

// AssistantHandler exposes chat, get_suggestions, list_memory, remember and memory_stats.
type AssistantHandler struct {
	client Assistant
	log    zerolog.Logger
}

// NewAssistantHandler returns a new handler.
func NewAssistantHandler(c Assistant, log zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{client: c, log: log}
}

// RegisterTools registers the assistant tools.
func (h *AssistantHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the personal assistant. Statements like \"remember that ...\" are stored in long-term memory."),
		mcp.WithString("message", mcp.Required(), mcp.Description("The user's message")),
	), h.handleChat)

	s.AddTool(mcp.NewTool("get_suggestions",
		mcp.WithDescription("Return ranked proactive suggestions based on tasks, content and memory"),
	), h.handleSuggestions)

	s.AddTool(mcp.NewTool("list_memory",
		mcp.WithDescription("List remembered facts, newest first"),
		mcp.WithNumber("limit", mcp.Description("Max entries (1-50), default 10")),
	), h.handleListMemory)

	s.AddTool(mcp.NewTool("remember",
		mcp.WithDescription("Store a note in the assistant's memory"),
		mcp.WithString("content", mcp.Required(), mcp.Description("The fact to remember")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
	), h.handleRemember)

	s.AddTool(mcp.NewTool("memory_stats",
		mcp.WithDescription("Report how many facts are remembered"),
	), h.handleStats)

	return nil
}

func (h *AssistantHandler) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := req.RequireString("message")
	if err != nil || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	start := time.Now()
	reply, err := h.client.Chat(ctx, message, nil)
	if err != nil {
		h.log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("chat failed")
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}
	h.log.Debug().Int("message_len", len(message)).Dur("elapsed", time.Since(start)).Msg("chat completed")
	return mcp.NewToolResultText(reply), nil
}

func (h *AssistantHandler) handleSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sugs, err := h.client.Suggestions(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_suggestions failed: %v", err)), nil
	}
	return jsonResult(sugs)
}

func (h *AssistantHandler) handleListMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 10
	if l, ok := req.GetArguments()["limit"].(float64); ok { // JSON numbers decode as float64
		limit = int(l)
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxToolLimit {
		limit = maxToolLimit
	}

	entries, err := h.client.ListMemory(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list_memory failed: %v", err)), nil
	}
	return jsonResult(entries)
}

func (h *AssistantHandler) handleRemember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil || strings.TrimSpace(content) == "" {
		return mcp.NewToolResultError("content is required"), nil
	}
	var tags []string
	if raw, ok := req.GetArguments()["tags"].(string); ok {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	entry, err := h.client.Remember(ctx, content, tags)
	if err != nil {
		h.log.Error().Err(err).Msg("remember failed")
		return mcp.NewToolResultError(fmt.Sprintf("remember failed: %v", err)), nil
	}
	return jsonResult(entry)
}

func (h *AssistantHandler) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.client.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("memory_stats failed: %v", err)), nil
	}
	return jsonResult(st)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
