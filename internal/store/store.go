package store

import (
	"context"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

const (
	// DefaultListLimit applies when ListRecent is called with limit <= 0.
	DefaultListLimit = 10
	// MaxListLimit caps a single ListRecent response.
	MaxListLimit = 100
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres, redis).
type Store interface {
	Memories() Memories
	Close() error
}

// Memories is the append/read/clear log of remembered facts.
// Entries are never edited; updates are new entries.
type Memories interface {
	Append(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error)
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.MemoryEntry, error)
	// ClearAll removes every entry atomically and reports how many were removed.
	ClearAll(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// NormalizeLimit applies the default and the upper bound.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
