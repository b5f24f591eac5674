package model

import "time"

// MemoryEntry is an immutable fact remembered from conversation.
type MemoryEntry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags,omitempty"`
}

// Role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one exchange replayed by the caller; never persisted.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SuggestionType orders suggestions by severity.
type SuggestionType string

const (
	SuggestionUrgent   SuggestionType = "urgent"
	SuggestionReminder SuggestionType = "reminder"
	SuggestionInfo     SuggestionType = "info"
)

// Rank returns the sort rank (lower sorts first).
func (t SuggestionType) Rank() int {
	switch t {
	case SuggestionUrgent:
		return 0
	case SuggestionReminder:
		return 1
	default:
		return 2
	}
}

// Suggestion is a computed proactive message.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
}

// Task mirrors the external Task Store record.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority,omitempty"`
}

// Article mirrors the external Content Store record.
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Published bool   `json:"published"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
}

// TaskDeadline is a task reduced to what suggestions need.
type TaskDeadline struct {
	Title    string    `json:"title"`
	Deadline time.Time `json:"deadline"`
}

// ContentActivity summarizes the Content Store.
type ContentActivity struct {
	UnpublishedDrafts int `json:"unpublished_drafts"`
	PublishedArticles int `json:"published_articles"`
	Likes             int `json:"likes"`
	Comments          int `json:"comments"`
}

// Context sources that may be missing from a snapshot.
const (
	SourceTasks   = "tasks"
	SourceContent = "content"
	SourceMemory  = "memory"
)

// ContextSnapshot is a read-only aggregate built fresh per suggestion request.
type ContextSnapshot struct {
	TakenAt          time.Time       `json:"taken_at"`
	PendingTaskCount int             `json:"pending_task_count"`
	TotalTaskCount   int             `json:"total_task_count"`
	OverdueTasks     []TaskDeadline  `json:"overdue_tasks"`
	UpcomingTasks    []TaskDeadline  `json:"upcoming_tasks"`
	ContentActivity  ContentActivity `json:"content_activity"`
	Unavailable      []string        `json:"unavailable,omitempty"`
}

// Available reports whether source was read successfully.
func (s ContextSnapshot) Available(source string) bool {
	for _, u := range s.Unavailable {
		if u == source {
			return false
		}
	}
	return true
}

// MarkUnavailable records a source that could not be read.
func (s *ContextSnapshot) MarkUnavailable(source string) {
	if s.Available(source) {
		s.Unavailable = append(s.Unavailable, source)
	}
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text           string
	ShouldRemember bool
	ExtractedFact  string
	Fallback       bool
}

// Stats reports memory statistics.
type Stats struct {
	Memories int `json:"memories"`
}
