package suggest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func oneMemory() []model.MemoryEntry {
	return []model.MemoryEntry{{ID: "m1", Content: "likes tea", CreatedAt: now}}
}

func TestGenerate_OverdueBeforeReminder(t *testing.T) {
	snap := model.ContextSnapshot{
		TakenAt:          now,
		TotalTaskCount:   2,
		PendingTaskCount: 2,
		OverdueTasks:     []model.TaskDeadline{{Title: "Pay invoice", Deadline: now.Add(-time.Hour)}},
		UpcomingTasks:    []model.TaskDeadline{{Title: "Call client", Deadline: now.Add(3 * time.Hour)}},
	}

	got := New(Options{}).Generate(snap, oneMemory())

	require.Len(t, got, 2)
	assert.Equal(t, model.Suggestion{Type: model.SuggestionUrgent, Message: "Task 'Pay invoice' is overdue."}, got[0])
	assert.Equal(t, model.Suggestion{Type: model.SuggestionReminder, Message: "Task 'Call client' is due soon."}, got[1])
}

func TestGenerate_EmptyContextGivesTwoInfos(t *testing.T) {
	got := New(Options{}).Generate(model.ContextSnapshot{TakenAt: now}, nil)

	require.Equal(t, []model.Suggestion{
		{Type: model.SuggestionInfo, Message: MsgNoTasks},
		{Type: model.SuggestionInfo, Message: MsgNoMemory},
	}, got)
}

func TestGenerate_ReminderWindow(t *testing.T) {
	snap := model.ContextSnapshot{
		TakenAt:          now,
		TotalTaskCount:   2,
		PendingTaskCount: 2,
		UpcomingTasks: []model.TaskDeadline{
			{Title: "Soon", Deadline: now.Add(2 * time.Hour)},
			{Title: "Later", Deadline: now.Add(48 * time.Hour)},
		},
	}

	got := New(Options{ReminderWindow: 24 * time.Hour}).Generate(snap, oneMemory())
	require.Len(t, got, 1)
	assert.Equal(t, "Task 'Soon' is due soon.", got[0].Message)

	got = New(Options{ReminderWindow: 72 * time.Hour}).Generate(snap, oneMemory())
	require.Len(t, got, 2)
}

func TestGenerate_OrdersByDeadlineThenTitle(t *testing.T) {
	snap := model.ContextSnapshot{
		TakenAt:          now,
		TotalTaskCount:   3,
		PendingTaskCount: 3,
		OverdueTasks: []model.TaskDeadline{
			{Title: "B", Deadline: now.Add(-time.Hour)},
			{Title: "A", Deadline: now.Add(-time.Hour)},
			{Title: "C", Deadline: now.Add(-3 * time.Hour)},
		},
	}

	got := New(Options{}).Generate(snap, oneMemory())
	require.Len(t, got, 3)
	assert.Equal(t, "Task 'C' is overdue.", got[0].Message)
	assert.Equal(t, "Task 'A' is overdue.", got[1].Message)
	assert.Equal(t, "Task 'B' is overdue.", got[2].Message)
}

func TestGenerate_TruncatesLowestPriorityTail(t *testing.T) {
	var overdue []model.TaskDeadline
	for i := 0; i < 4; i++ {
		overdue = append(overdue, model.TaskDeadline{Title: fmt.Sprintf("t%d", i), Deadline: now.Add(-time.Duration(10-i) * time.Hour)})
	}
	snap := model.ContextSnapshot{
		TakenAt:          now,
		TotalTaskCount:   8,
		PendingTaskCount: 8,
		OverdueTasks:     overdue,
		UpcomingTasks:    []model.TaskDeadline{{Title: "soon", Deadline: now.Add(time.Hour)}},
		ContentActivity:  model.ContentActivity{UnpublishedDrafts: 2},
	}

	got := New(Options{Limit: 5}).Generate(snap, nil)
	require.Len(t, got, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, model.SuggestionUrgent, got[i].Type)
	}
	assert.Equal(t, model.SuggestionReminder, got[4].Type)

	all := New(Options{Limit: 20}).Generate(snap, nil)
	require.Len(t, all, 8)
	assert.Equal(t, MsgNoMemory, all[5].Message)
	assert.Equal(t, MsgBusy, all[6].Message)
	assert.Contains(t, all[7].Message, "2 unpublished drafts")
}

func TestGenerate_UnavailableSourcesSuppressRules(t *testing.T) {
	snap := model.ContextSnapshot{TakenAt: now, Unavailable: []string{model.SourceTasks, model.SourceMemory}}
	assert.Empty(t, New(Options{}).Generate(snap, nil))

	snap = model.ContextSnapshot{
		TakenAt:         now,
		TotalTaskCount:  1,
		ContentActivity: model.ContentActivity{UnpublishedDrafts: 1},
		Unavailable:     []string{model.SourceContent},
	}
	assert.Empty(t, New(Options{}).Generate(snap, oneMemory()))
}

func TestGenerate_BusyThreshold(t *testing.T) {
	snap := model.ContextSnapshot{TakenAt: now, TotalTaskCount: 6, PendingTaskCount: 6}
	got := New(Options{BusyThreshold: 5}).Generate(snap, oneMemory())
	require.Len(t, got, 1)
	assert.Equal(t, MsgBusy, got[0].Message)

	snap.PendingTaskCount = 5
	assert.Empty(t, New(Options{BusyThreshold: 5}).Generate(snap, oneMemory()))
}
