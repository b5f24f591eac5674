package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/aggregator"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/auth"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/upstream"
)

// NewUpstream returns the portfolio backend client, or nil when no URL is configured.
func NewUpstream(cfg *config.Config, log zerolog.Logger) *upstream.Client {
	if cfg.PortfolioAPIURL == "" {
		log.Warn().Msg("PORTFOLIO_API_URL not set; task and content context unavailable")
		return nil
	}
	return upstream.New(cfg.PortfolioAPIURL, cfg.PortfolioAPIToken, cfg.UpstreamTimeout)
}

// NewAggregator wires the context aggregator to the backend client.
// A nil client leaves both sources unset so they report unavailable.
func NewAggregator(cfg *config.Config, client *upstream.Client, log zerolog.Logger) *aggregator.Aggregator {
	if client == nil {
		return aggregator.New(nil, nil, cfg.UpstreamTimeout, log)
	}
	return aggregator.New(client, client, cfg.UpstreamTimeout, log)
}

// NewAuthorizer selects the auth boundary for cfg.AuthMode.
func NewAuthorizer(cfg *config.Config, client *upstream.Client) (auth.Authorizer, error) {
	switch cfg.AuthMode {
	case config.AuthNone, "":
		return auth.NewNoopAuthorizer(), nil
	case config.AuthStatic:
		return auth.NewStaticAuthorizer(cfg.AuthToken), nil
	case config.AuthRemote:
		if client == nil {
			return nil, fmt.Errorf("AUTH_MODE=remote requires PORTFOLIO_API_URL")
		}
		return auth.NewRemoteAuthorizer(client), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE: %s", cfg.AuthMode)
	}
}
