package assistantservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/api"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/auth"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/conversation"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/factory"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/health"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/logger"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/services"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/suggest"
)

// Run starts the assistant HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("assistant-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = log.Level(logger.ParseLevel(cfg.LogLevel))

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("store_driver", cfg.StoreDriver).
		Str("responder", cfg.Responder).
		Str("auth_mode", cfg.AuthMode).
		Int("http_port", cfg.HTTPPort).
		Msg("Assistant service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	deps, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.store.Close(); err != nil {
			log.Warn().Err(err).Msg("memory store close failed")
		}
	}()

	svcHealth := startHealthCheckers(ctx, cfg, log, deps.store)

	router := buildRouter(deps, svcHealth, log)

	// Block startup until the memory store answers; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

type dependencies struct {
	store      store.Store
	assistant  *services.AssistantService
	authorizer auth.Authorizer
}

// initDependencies constructs required components and enforces fail-fast on misconfiguration.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*dependencies, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Memory store unavailable")
		return nil, err
	}

	client := factory.NewUpstream(cfg, log)
	agg := factory.NewAggregator(cfg, client, log)

	r, err := factory.NewResponder(cfg, log)
	if err != nil {
		_ = st.Close()
		log.Error().Stack().Err(err).Msg("Responder unavailable")
		return nil, err
	}

	authorizer, err := factory.NewAuthorizer(cfg, client)
	if err != nil {
		_ = st.Close()
		log.Error().Stack().Err(err).Msg("Authorizer unavailable")
		return nil, err
	}

	suggestions := suggest.New(suggest.Options{
		Limit:          cfg.SuggestionLimit,
		ReminderWindow: cfg.ReminderWindow,
		BusyThreshold:  cfg.BusyThreshold,
	})
	conv := conversation.New(r, log)
	svc := services.NewAssistantService(st, agg, suggestions, conv, services.Options{
		MemoryContextLimit: cfg.MemoryContextLimit,
		MemoryListLimit:    cfg.MemoryListLimit,
	}, log)

	return &dependencies{store: st, assistant: svc, authorizer: authorizer}, nil
}

func buildRouter(deps *dependencies, svcHealth *health.Monitor, log zerolog.Logger) *mux.Router {
	return api.NewRouter(deps.assistant, deps.authorizer, svcHealth, log)
}

// startHealthCheckers starts the memory store checker and the monitor over it.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.Monitor {
	timeout := time.Duration(cfg.HealthCheckTimeoutSeconds) * time.Second
	interval := healthInterval(cfg)

	storeChecker := store.NewHealthChecker(st, log, timeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewMonitor(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func healthInterval(cfg *config.Config) time.Duration {
	if cfg.HealthIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.HealthIntervalSeconds) * time.Second
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Chat may wait on a remote model for up to ResponderTimeout.
		WriteTimeout: cfg.ResponderTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// healthReporter is what waitUntilHealthy polls.
type healthReporter interface {
	IsHealthy() bool
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth healthReporter) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
