package assistantservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
)

func TestCalculateStartupHealthTimeout(t *testing.T) {
	tests := []struct {
		interval int
		want     int
	}{
		{0, 60},
		{1, 60},
		{30, 60},
		{31, 62},
		{120, 240},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calculateStartupHealthTimeout(tt.interval), "interval=%d", tt.interval)
	}
}

type flipReporter struct{ healthy atomic.Bool }

func (f *flipReporter) IsHealthy() bool { return f.healthy.Load() }

func TestWaitUntilHealthy(t *testing.T) {
	cfg := config.NewForTesting()

	t.Run("returns once healthy", func(t *testing.T) {
		r := &flipReporter{}
		go func() {
			time.Sleep(300 * time.Millisecond)
			r.healthy.Store(true)
		}()
		require.NoError(t, waitUntilHealthy(context.Background(), cfg, r))
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		err := waitUntilHealthy(ctx, cfg, &flipReporter{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestInitDependenciesServesRouter(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "assistant.db")
	log := zerolog.Nop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := initDependencies(ctx, cfg, log)
	require.NoError(t, err)
	defer deps.store.Close()

	svcHealth := startHealthCheckers(ctx, cfg, log, deps.store)
	require.NoError(t, waitUntilHealthy(ctx, cfg, svcHealth))

	srv := httptest.NewServer(buildRouter(deps, svcHealth, log))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/ai/chat", "application/json",
		strings.NewReader(`{"message":"remember that I like green tea"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	n, err := deps.store.Memories().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInitDependenciesRejectsBadAuth(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "assistant.db")
	cfg.AuthMode = config.AuthRemote

	_, err := initDependencies(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewHTTPServerTimeouts(t *testing.T) {
	cfg := config.NewForTesting()
	srv := newHTTPServer(context.Background(), cfg, http.NewServeMux())
	assert.Equal(t, ":8090", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadHeaderTimeout)
	assert.Greater(t, srv.WriteTimeout, cfg.ResponderTimeout)
}
