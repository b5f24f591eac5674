package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/config"
)

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "a.db")

	s, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Memories().Append(context.Background(), "hello", nil)
	require.NoError(t, err)
	n, err := s.Memories().Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNewStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.NewForTesting()
	cfg.StoreDriver = config.DriverRedis
	cfg.RedisAddr = mr.Addr()

	s, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Memories().Append(context.Background(), "hello", nil)
	require.NoError(t, err)
	require.True(t, mr.Exists(cfg.RedisKey))
}

func TestNewStore_Rejects(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = "spanner"
	_, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)

	cfg.StoreDriver = config.DriverPostgres
	cfg.PostgresDSN = ""
	_, err = NewStore(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}
