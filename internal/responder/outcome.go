package responder

import "context"

// Outcome is what the caller decided about the utterance before asking for a reply.
type Outcome struct {
	// Remembered is set when the utterance's fact is being saved.
	Remembered bool
	// AlreadyKnown is set when the fact matched an existing memory.
	AlreadyKnown bool
}

type outcomeKey struct{}

// WithOutcome attaches o to ctx for the responder call.
func WithOutcome(ctx context.Context, o Outcome) context.Context {
	return context.WithValue(ctx, outcomeKey{}, o)
}

// OutcomeFrom returns the outcome attached to ctx, or the zero Outcome.
func OutcomeFrom(ctx context.Context) Outcome {
	o, _ := ctx.Value(outcomeKey{}).(Outcome)
	return o
}

// Conditions a rule can require.
const (
	RequireRemembered   = "remembered"
	RequireAlreadyKnown = "already_known"
)

func (o Outcome) satisfies(require string) bool {
	switch require {
	case "":
		return true
	case RequireRemembered:
		return o.Remembered
	case RequireAlreadyKnown:
		return o.AlreadyKnown
	}
	return false
}

// outcomeNote tells generative responders what happened to the utterance.
func outcomeNote(ctx context.Context) string {
	o := OutcomeFrom(ctx)
	switch {
	case o.Remembered:
		return "\nThe user's latest message was saved to memory. Confirm it briefly.\n"
	case o.AlreadyKnown:
		return "\nThe fact in the user's latest message is already in memory. Say so; nothing new was saved.\n"
	}
	return "\nNothing from the user's latest message was saved. Do not claim you stored anything.\n"
}
