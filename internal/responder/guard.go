package responder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// Guard bounds a generative responder with a token-bucket limiter and a
// per-call timeout.
type Guard struct {
	inner   Responder
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGuard wraps inner. rps <= 0 disables limiting.
func NewGuard(inner Responder, rps float64, burst int, timeout time.Duration) *Guard {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Guard{inner: inner, limiter: rate.NewLimiter(limit, burst), timeout: timeout}
}

func (g *Guard) Generate(ctx context.Context, utterance, memoryContext string) (string, error) {
	return g.call(ctx, func(ctx context.Context) (string, error) {
		return g.inner.Generate(ctx, utterance, memoryContext)
	})
}

func (g *Guard) GenerateWithHistory(ctx context.Context, utterance, memoryContext string, history []model.Turn) (string, error) {
	return g.call(ctx, func(ctx context.Context) (string, error) {
		return Reply(ctx, g.inner, utterance, memoryContext, history)
	})
}

func (g *Guard) call(ctx context.Context, f func(context.Context) (string, error)) (string, error) {
	if !g.limiter.Allow() {
		return "", fmt.Errorf("%w: rate limited", model.ErrResponderUnavailable)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	out, err := f(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrResponderUnavailable, err)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty reply", model.ErrResponderUnavailable)
	}
	return out, nil
}
