// Package health tracks whether the assistant's dependencies can serve
// requests. Today that is the memory store; the upstream portfolio API is
// optional and degrades to empty context instead.
package health

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Checker keeps a cached health flag for one dependency.
type Checker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Monitor folds checkers into the service's readiness flag.
type Monitor struct {
	up       atomic.Bool
	checkers []Checker
	log      zerolog.Logger
}

// NewMonitor starts out down until the first evaluation sees every checker healthy.
func NewMonitor(log zerolog.Logger, checkers ...Checker) *Monitor {
	return &Monitor{checkers: checkers, log: log}
}

// IsHealthy returns the cached service flag.
func (m *Monitor) IsHealthy() bool { return m.up.Load() }

// Components reports each checker's cached flag by name.
func (m *Monitor) Components() map[string]bool {
	out := make(map[string]bool, len(m.checkers))
	for _, c := range m.checkers {
		out[c.Name()] = c.IsHealthy()
	}
	return out
}

// Down lists the unhealthy checkers, sorted by name.
func (m *Monitor) Down() []string {
	var down []string
	for _, c := range m.checkers {
		if !c.IsHealthy() {
			down = append(down, c.Name())
		}
	}
	sort.Strings(down)
	return down
}

// Start re-evaluates every interval until ctx ends, logging UP/DOWN transitions.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evaluate()
		}
	}
}

func (m *Monitor) evaluate() {
	down := m.Down()
	up := len(down) == 0
	if m.up.Swap(up) == up {
		return
	}
	if up {
		m.log.Info().Msg("assistant health: UP")
	} else {
		m.log.Error().Strs("down", down).Msg("assistant health: DOWN")
	}
}
