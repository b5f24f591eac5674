// Package responder produces the assistant's reply text for one utterance.
// Local responders (rules, template) never fail; generative ones (langchain,
// claude) are wrapped in a Guard so refusals and failures surface as
// model.ErrResponderUnavailable.
package responder

import (
	"context"
	"strings"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// Responder generates a reply to utterance given the rendered memory context.
type Responder interface {
	Generate(ctx context.Context, utterance, memoryContext string) (string, error)
}

// Conversational responders can also use the turns replayed by the caller.
type Conversational interface {
	Responder
	GenerateWithHistory(ctx context.Context, utterance, memoryContext string, history []model.Turn) (string, error)
}

// Reply calls r with history when it supports it.
func Reply(ctx context.Context, r Responder, utterance, memoryContext string, history []model.Turn) (string, error) {
	if c, ok := r.(Conversational); ok && len(history) > 0 {
		return c.GenerateWithHistory(ctx, utterance, memoryContext, history)
	}
	return r.Generate(ctx, utterance, memoryContext)
}

// SystemPrompt is the instruction given to generative responders.
func SystemPrompt(memoryContext string) string {
	mem := strings.TrimSpace(memoryContext)
	if mem == "" {
		mem = "No previous memories stored yet."
	}
	var b strings.Builder
	b.WriteString("You are a helpful, friendly and proactive personal assistant for the owner of this portfolio. ")
	b.WriteString("You help manage tasks, give reminders and offer productivity suggestions. ")
	b.WriteString("Speak in a professional yet warm manner.\n\n")
	b.WriteString("What you remember about the user:\n")
	b.WriteString(mem)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Be proactive about upcoming tasks and deadlines\n")
	b.WriteString("- Remember personal preferences and details shared\n")
	b.WriteString("- Keep responses concise but helpful\n")
	return b.String()
}
