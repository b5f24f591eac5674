package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// DefaultClaudeModel is used when no model is configured.
const DefaultClaudeModel = anthropic.ModelClaude3_7SonnetLatest

const claudeMaxTokens = 1024

// Claude generates replies through the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClaude creates a Claude responder. Extra options are passed to the client.
func NewClaude(apiKey, modelName string, opts ...option.RequestOption) (*Claude, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key required")
	}
	m := anthropic.Model(modelName)
	if modelName == "" {
		m = DefaultClaudeModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Claude{client: anthropic.NewClient(opts...), model: m}, nil
}

func (c *Claude) Generate(ctx context.Context, utterance, memoryContext string) (string, error) {
	return c.GenerateWithHistory(ctx, utterance, memoryContext, nil)
}

func (c *Claude) GenerateWithHistory(ctx context.Context, utterance, memoryContext string, history []model.Turn) (string, error) {
	conv := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		if t.Role == model.RoleAssistant {
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Content)))
			continue
		}
		conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
	}
	conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(utterance)))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(claudeMaxTokens),
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt(memoryContext) + outcomeNote(ctx)}},
		Messages:  conv,
	})
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(v.Text)
		}
	}
	return b.String(), nil
}
