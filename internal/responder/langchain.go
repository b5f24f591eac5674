package responder

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// LLM providers served through langchaingo.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// LangchainConfig selects and configures the langchaingo backend.
type LangchainConfig struct {
	Provider   string
	Model      string
	OpenAIKey  string
	OllamaHost string
}

// Langchain generates replies through a langchaingo model.
type Langchain struct {
	llm       llms.Model
	modelName string
}

// NewLangchain creates a responder for the configured provider.
func NewLangchain(cfg LangchainConfig) (*Langchain, error) {
	var m llms.Model
	var err error

	switch cfg.Provider {
	case ProviderOllama:
		m, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		m, err = openai.New(
			openai.WithToken(cfg.OpenAIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return NewLangchainWithModel(m, cfg.Model), nil
}

// NewLangchainWithModel wraps an existing langchaingo model.
func NewLangchainWithModel(m llms.Model, modelName string) *Langchain {
	return &Langchain{llm: m, modelName: modelName}
}

func (l *Langchain) Generate(ctx context.Context, utterance, memoryContext string) (string, error) {
	return l.GenerateWithHistory(ctx, utterance, memoryContext, nil)
}

func (l *Langchain) GenerateWithHistory(ctx context.Context, utterance, memoryContext string, history []model.Turn) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt(memoryContext) + outcomeNote(ctx)),
	}
	for _, t := range history {
		role := llms.ChatMessageTypeHuman
		if t.Role == model.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, t.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, utterance))

	response, err := l.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate with system: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (l *Langchain) Model() string {
	return l.modelName
}
