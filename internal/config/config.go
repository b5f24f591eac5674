package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Responder kinds
const (
	ResponderRules     = "rules"
	ResponderTemplate  = "template"
	ResponderLangchain = "langchain"
	ResponderClaude    = "claude"
)

// Auth modes
const (
	AuthNone   = "none"
	AuthStatic = "static"
	AuthRemote = "remote"
)

// Config holds the configuration for the assistant service.
// Environment variables are parsed from the ASSISTANT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8090"`

	// Memory store
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./data/assistant.db"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:""`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisKey      string `envconfig:"REDIS_KEY" default:"assistant:memories"`

	// Memory bounds
	MemoryContextLimit int `envconfig:"MEMORY_CONTEXT_LIMIT" default:"10"`
	MemoryListLimit    int `envconfig:"MEMORY_LIST_LIMIT" default:"100"`

	// Suggestions
	SuggestionLimit int           `envconfig:"SUGGESTION_LIMIT" default:"5"`
	ReminderWindow  time.Duration `envconfig:"REMINDER_WINDOW" default:"24h"`
	BusyThreshold   int           `envconfig:"BUSY_THRESHOLD" default:"5"`

	// Portfolio backend (Task Store, Content Store, Auth)
	PortfolioAPIURL   string        `envconfig:"PORTFOLIO_API_URL" default:""`
	PortfolioAPIToken string        `envconfig:"PORTFOLIO_API_TOKEN" default:""`
	UpstreamTimeout   time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"2s"`

	// Responder
	Responder        string        `envconfig:"RESPONDER" default:"rules"`
	RulesFile        string        `envconfig:"RULES_FILE" default:""`
	LLMProvider      string        `envconfig:"LLM_PROVIDER" default:"openai"`
	LLMModel         string        `envconfig:"LLM_MODEL" default:"gpt-4.1-mini"`
	OpenAIAPIKey     string        `envconfig:"OPENAI_API_KEY" default:""`
	OllamaHost       string        `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	AnthropicAPIKey  string        `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicModel   string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-7-sonnet-latest"`
	ResponderTimeout time.Duration `envconfig:"RESPONDER_TIMEOUT" default:"20s"`
	ResponderRPS     float64       `envconfig:"RESPONDER_RPS" default:"1"`
	ResponderBurst   int           `envconfig:"RESPONDER_BURST" default:"3"`

	// Auth boundary
	AuthMode  string `envconfig:"AUTH_MODE" default:"none"`
	AuthToken string `envconfig:"AUTH_TOKEN" default:""`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthCheckTimeoutSeconds int `envconfig:"HEALTH_CHECK_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates enumerated settings and clamps bounds.
func (c *Config) ResolveDefaults() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	switch c.Responder {
	case ResponderRules, ResponderTemplate:
	case ResponderLangchain:
		if c.LLMProvider != "openai" && c.LLMProvider != "ollama" {
			return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
		}
	case ResponderClaude:
	default:
		return fmt.Errorf("unsupported RESPONDER: %s", c.Responder)
	}

	switch c.AuthMode {
	case AuthNone:
	case AuthStatic:
		if c.AuthToken == "" {
			return fmt.Errorf("AUTH_TOKEN is required when AUTH_MODE=static")
		}
	case AuthRemote:
		if c.PortfolioAPIURL == "" {
			return fmt.Errorf("PORTFOLIO_API_URL is required when AUTH_MODE=remote")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}

	if c.MemoryContextLimit <= 0 {
		c.MemoryContextLimit = 10
	}
	if c.MemoryListLimit <= 0 {
		c.MemoryListLimit = 100
	}
	if c.SuggestionLimit <= 0 {
		c.SuggestionLimit = 5
	}
	if c.ReminderWindow <= 0 {
		c.ReminderWindow = 24 * time.Hour
	}
	if c.UpstreamTimeout <= 0 {
		c.UpstreamTimeout = 2 * time.Second
	}
	return nil
}

// New creates a new Config by parsing environment variables
// prefixed with ASSISTANT_, e.g. ASSISTANT_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ASSISTANT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("store_driver", cfg.StoreDriver).
		Str("responder", cfg.Responder).
		Str("auth_mode", cfg.AuthMode).
		Str("portfolio_api_url", cfg.PortfolioAPIURL).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Dur("reminder_window", cfg.ReminderWindow).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
		LogLevel:    "debug",
		HTTPPort:    8090,

		StoreDriver: DriverSQLite,
		SQLitePath:  "assistant-test.db",
		RedisKey:    "assistant:test:memories",

		MemoryContextLimit: 10,
		MemoryListLimit:    100,
		SuggestionLimit:    5,
		ReminderWindow:     24 * time.Hour,
		BusyThreshold:      5,
		UpstreamTimeout:    200 * time.Millisecond,

		Responder:        ResponderRules,
		ResponderTimeout: time.Second,
		ResponderRPS:     100,
		ResponderBurst:   100,

		AuthMode: AuthNone,

		HealthIntervalSeconds:     1,
		HealthCheckTimeoutSeconds: 1,
	}
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
