// Package mcp serves the assistant's tools over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/client"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/logger"
	"github.com/Maverick-list/Personal-Advance-Portofolio/mcp/internal/handlers"
)

// Transports
const (
	TransportAuto  = "auto"
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all settings for the MCP server, parsed from ASSISTANT_MCP_*.
type Config struct {
	ServiceURL      string        `envconfig:"SERVICE_URL" default:"http://localhost:8090"`
	Token           string        `envconfig:"TOKEN" default:""`
	Transport       string        `envconfig:"TRANSPORT" default:"auto"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8091"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ServerName      string        `envconfig:"SERVER_NAME" default:"assistant-mcp-server"`
	ServerVersion   string        `envconfig:"SERVER_VERSION" default:"0.1.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// LoadConfig parses the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ASSISTANT_MCP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	switch cfg.Transport {
	case TransportAuto, TransportStdio, TransportHTTP:
	default:
		return nil, fmt.Errorf("unsupported TRANSPORT: %s", cfg.Transport)
	}
	return &cfg, nil
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with every assistant tool registered.
func NewServer(cfg *Config, assistant handlers.Assistant, log zerolog.Logger) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
	)
	regs := []struct {
		name string
		h    toolRegisterer
	}{
		{"assistant", handlers.NewAssistantHandler(assistant, log)},
	}
	for _, r := range regs {
		if err := r.h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", r.name, err)
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server and blocks until shutdown or error.
func RunMCPServer() error {
	// stdout carries the stdio protocol; logs go to stderr.
	log := logger.NewWithWriter("assistant-mcp-server", os.Stderr)

	cfg, err := LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = log.Level(logger.ParseLevel(cfg.LogLevel))

	sdk, err := client.New(cfg.ServiceURL, client.WithToken(cfg.Token))
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}

	s, err := NewServer(cfg, sdk, log)
	if err != nil {
		return err
	}

	if useStdio(cfg.Transport) {
		log.Info().Str("service_url", cfg.ServiceURL).Msg("Starting MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s, log)
}

func serveHTTP(cfg *Config, s *server.MCPServer, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     streamSrv,
		ReadTimeout: cfg.HTTPReadTimeout,
		// No write deadline; streamed responses stay open.
		WriteTimeout: 0,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting MCP server (streamable HTTP)")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server error")
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
	}
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// useStdio resolves the auto transport: stdio when stdin is not a terminal.
func useStdio(transport string) bool {
	switch transport {
	case TransportStdio:
		return true
	case TransportHTTP:
		return false
	}
	if fi, err := os.Stdin.Stat(); err == nil {
		return (fi.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
