// Package suggest turns a context snapshot into ranked proactive suggestions.
// The engine is pure: "now" is the snapshot's TakenAt.
package suggest

import (
	"fmt"
	"sort"
	"time"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

const (
	MsgNoTasks  = "You have no tasks yet. Add one and I'll help you keep track of it."
	MsgNoMemory = "I don't know much about you yet. Tell me something to remember, for example \"remember that I prefer morning meetings\"."
	MsgBusy     = "You have quite a few tasks. Consider prioritizing the top 3 to focus on today."
)

// Options bound the engine.
type Options struct {
	Limit          int
	ReminderWindow time.Duration
	BusyThreshold  int
}

// Engine computes suggestions.
type Engine struct {
	opts Options
}

// New returns an engine, filling zero options with defaults.
func New(opts Options) *Engine {
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	if opts.ReminderWindow <= 0 {
		opts.ReminderWindow = 24 * time.Hour
	}
	if opts.BusyThreshold <= 0 {
		opts.BusyThreshold = 5
	}
	return &Engine{opts: opts}
}

type ranked struct {
	s        model.Suggestion
	deadline time.Time
	title    string
	order    int
}

// Generate applies the rules to snap and recentMemory and returns at most Limit
// suggestions: urgent, then reminder, then info.
func (e *Engine) Generate(snap model.ContextSnapshot, recentMemory []model.MemoryEntry) []model.Suggestion {
	now := snap.TakenAt
	var out []ranked
	info := 0
	addInfo := func(msg string) {
		out = append(out, ranked{s: model.Suggestion{Type: model.SuggestionInfo, Message: msg}, order: info})
		info++
	}

	tasksOK := snap.Available(model.SourceTasks)
	if tasksOK {
		for _, t := range snap.OverdueTasks {
			if !t.Deadline.Before(now) {
				continue
			}
			out = append(out, ranked{
				s:        model.Suggestion{Type: model.SuggestionUrgent, Message: fmt.Sprintf("Task '%s' is overdue.", t.Title)},
				deadline: t.Deadline,
				title:    t.Title,
			})
		}
		horizon := now.Add(e.opts.ReminderWindow)
		for _, t := range snap.UpcomingTasks {
			if t.Deadline.Before(now) || t.Deadline.After(horizon) {
				continue
			}
			out = append(out, ranked{
				s:        model.Suggestion{Type: model.SuggestionReminder, Message: fmt.Sprintf("Task '%s' is due soon.", t.Title)},
				deadline: t.Deadline,
				title:    t.Title,
			})
		}
		if snap.TotalTaskCount == 0 {
			addInfo(MsgNoTasks)
		}
	}

	if snap.Available(model.SourceMemory) && len(recentMemory) == 0 {
		addInfo(MsgNoMemory)
	}

	if tasksOK && snap.PendingTaskCount > e.opts.BusyThreshold {
		addInfo(MsgBusy)
	}

	if snap.Available(model.SourceContent) && snap.ContentActivity.UnpublishedDrafts > 0 {
		addInfo(draftMessage(snap.ContentActivity.UnpublishedDrafts))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := a.s.Type.Rank(), b.s.Type.Rank(); ra != rb {
			return ra < rb
		}
		if a.s.Type == model.SuggestionInfo {
			return a.order < b.order
		}
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.title < b.title
	})

	if len(out) > e.opts.Limit {
		out = out[:e.opts.Limit]
	}
	res := make([]model.Suggestion, 0, len(out))
	for _, r := range out {
		res = append(res, r.s)
	}
	return res
}

func draftMessage(n int) string {
	if n == 1 {
		return "You have 1 unpublished draft. Consider finishing and publishing it."
	}
	return fmt.Sprintf("You have %d unpublished drafts. Consider publishing one of them.", n)
}
