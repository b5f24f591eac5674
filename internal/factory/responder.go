package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/responder"
)

// NewResponder builds the reply generator selected by cfg.Responder.
// Generative responders are wrapped in a rate-limited, time-bounded guard.
func NewResponder(cfg *config.Config, log zerolog.Logger) (responder.Responder, error) {
	switch cfg.Responder {
	case config.ResponderRules, "":
		return responder.NewRules(cfg.RulesFile)

	case config.ResponderTemplate:
		return responder.NewTemplate(cfg.RulesFile)

	case config.ResponderLangchain:
		lc, err := responder.NewLangchain(responder.LangchainConfig{
			Provider:   cfg.LLMProvider,
			Model:      cfg.LLMModel,
			OpenAIKey:  cfg.OpenAIAPIKey,
			OllamaHost: cfg.OllamaHost,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("provider", cfg.LLMProvider).Str("model", cfg.LLMModel).Msg("langchain responder configured")
		return responder.NewGuard(lc, cfg.ResponderRPS, cfg.ResponderBurst, cfg.ResponderTimeout), nil

	case config.ResponderClaude:
		cl, err := responder.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, err
		}
		log.Info().Str("model", cfg.AnthropicModel).Msg("claude responder configured")
		return responder.NewGuard(cl, cfg.ResponderRPS, cfg.ResponderBurst, cfg.ResponderTimeout), nil

	default:
		return nil, fmt.Errorf("unknown RESPONDER: %s", cfg.Responder)
	}
}
