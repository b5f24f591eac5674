// Package conversation produces one assistant turn: the reply text and whether
// the utterance carries a fact to remember.
package conversation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/metrics"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/responder"
)

// Engine combines a responder with fact extraction.
type Engine struct {
	responder responder.Responder
	log       zerolog.Logger
}

// New returns an engine using r for reply text.
func New(r responder.Responder, log zerolog.Logger) *Engine {
	return &Engine{responder: r, log: log}
}

// Respond never fails: responder errors and empty output yield model.FallbackResponse.
func (e *Engine) Respond(ctx context.Context, utterance string, priorMemory []model.MemoryEntry, history []model.Turn) model.Reply {
	var reply model.Reply

	var outcome responder.Outcome
	if fact := ExtractFact(utterance); fact != "" {
		if alreadyKnown(fact, priorMemory) {
			outcome.AlreadyKnown = true
		} else {
			outcome.Remembered = true
			reply.ShouldRemember = true
			reply.ExtractedFact = fact
		}
	}
	ctx = responder.WithOutcome(ctx, outcome)

	text, err := responder.Reply(ctx, e.responder, utterance, RenderMemory(priorMemory), history)
	switch {
	case err != nil:
		e.log.Warn().Err(err).Msg("responder failed; using fallback")
		metrics.RecordFallback("error")
		reply.Text, reply.Fallback = model.FallbackResponse, true
	case strings.TrimSpace(text) == "":
		metrics.RecordFallback("empty")
		reply.Text, reply.Fallback = model.FallbackResponse, true
	default:
		reply.Text = strings.TrimSpace(text)
	}
	return reply
}

// RenderMemory formats entries as "- content" lines in the given order.
func RenderMemory(entries []model.MemoryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(e.Content)
	}
	return b.String()
}
