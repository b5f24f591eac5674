package store

import (
	"context"
	"sync"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/health"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// Serialized wraps s so that ClearAll never interleaves with Append or
// ListRecent issued through the returned Store. Appends and reads share the
// read side of the lock and still run concurrently with each other.
func Serialized(s Store) Store {
	return &serialized{inner: s, mem: &serializedMemories{inner: s.Memories()}}
}

type serialized struct {
	inner Store
	mem   *serializedMemories
}

func (s *serialized) Memories() Memories { return s.mem }
func (s *serialized) Close() error       { return s.inner.Close() }

// Ping forwards to the wrapped driver, or counts memories when it cannot ping.
func (s *serialized) Ping(ctx context.Context) error {
	if p, ok := s.inner.(health.Pinger); ok {
		return p.Ping(ctx)
	}
	_, err := s.inner.Memories().Count(ctx)
	return err
}

type serializedMemories struct {
	mu    sync.RWMutex
	inner Memories
}

func (m *serializedMemories) Append(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inner.Append(ctx, content, tags)
}

func (m *serializedMemories) ListRecent(ctx context.Context, limit int) ([]model.MemoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inner.ListRecent(ctx, limit)
}

func (m *serializedMemories) ClearAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inner.ClearAll(ctx)
}

func (m *serializedMemories) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inner.Count(ctx)
}
