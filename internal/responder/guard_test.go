package responder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

type stubResponder struct {
	reply   string
	err     error
	block   bool
	history []model.Turn
}

func (s *stubResponder) Generate(ctx context.Context, _, _ string) (string, error) {
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func (s *stubResponder) GenerateWithHistory(ctx context.Context, u, m string, h []model.Turn) (string, error) {
	s.history = h
	return s.Generate(ctx, u, m)
}

func TestGuard_PassesThrough(t *testing.T) {
	g := NewGuard(&stubResponder{reply: "hi"}, 0, 1, time.Second)
	got, err := g.Generate(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestGuard_ForwardsHistory(t *testing.T) {
	inner := &stubResponder{reply: "ok"}
	g := NewGuard(inner, 0, 1, time.Second)
	hist := []model.Turn{{Role: model.RoleUser, Content: "a"}}

	_, err := Reply(context.Background(), g, "b", "", hist)
	require.NoError(t, err)
	assert.Equal(t, hist, inner.history)
}

func TestGuard_WrapsFailures(t *testing.T) {
	for name, inner := range map[string]*stubResponder{
		"error": {err: errors.New("provider down")},
		"empty": {reply: "  "},
	} {
		_, err := NewGuard(inner, 0, 1, time.Second).Generate(context.Background(), "x", "")
		assert.True(t, errors.Is(err, model.ErrResponderUnavailable), name)
	}
}

func TestGuard_Timeout(t *testing.T) {
	g := NewGuard(&stubResponder{block: true}, 0, 1, 30*time.Millisecond)
	start := time.Now()
	_, err := g.Generate(context.Background(), "x", "")
	assert.True(t, errors.Is(err, model.ErrResponderUnavailable))
	assert.Less(t, time.Since(start), time.Second)
}

func TestGuard_RateLimited(t *testing.T) {
	g := NewGuard(&stubResponder{reply: "hi"}, 0.001, 1, time.Second)
	_, err := g.Generate(context.Background(), "x", "")
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "x", "")
	assert.True(t, errors.Is(err, model.ErrResponderUnavailable))
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, SystemPrompt(""), "No previous memories stored yet.")
	assert.Contains(t, SystemPrompt("- likes tea"), "- likes tea")
}

func TestOutcomeNote(t *testing.T) {
	ctx := context.Background()
	assert.Contains(t, outcomeNote(ctx), "Nothing from the user's latest message was saved")
	assert.Contains(t, outcomeNote(WithOutcome(ctx, Outcome{Remembered: true})), "was saved to memory")
	assert.Contains(t, outcomeNote(WithOutcome(ctx, Outcome{AlreadyKnown: true})), "already in memory")
}
