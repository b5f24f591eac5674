package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

const (
	MaxMessageLen = 4000
	MaxHistory    = 50
	MaxNoteLen    = 500
	MaxTags       = 10
	MaxTagLen     = 32
)

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// Limit parses an optional ?limit= value. Empty means 0 (server default).
func Limit(raw string, max int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", max)
	}
	return n, nil
}

// -------- Request specific helpers ----------

// ChatMessage validates a chat request.
func ChatMessage(message string, history []model.Turn) error {
	if err := NonEmpty("message", message); err != nil {
		return err
	}
	if err := MaxLen("message", message, MaxMessageLen); err != nil {
		return err
	}
	if len(history) > MaxHistory {
		return fmt.Errorf("history exceeds %d turns", MaxHistory)
	}
	for i, t := range history {
		if t.Role != model.RoleUser && t.Role != model.RoleAssistant {
			return fmt.Errorf("history[%d].role must be user or assistant", i)
		}
		if err := MaxLen(fmt.Sprintf("history[%d].content", i), t.Content, MaxMessageLen); err != nil {
			return err
		}
	}
	return nil
}

// MemoryNote validates a manual memory note.
func MemoryNote(content string, tags []string) error {
	if err := NonEmpty("content", content); err != nil {
		return err
	}
	if err := MaxLen("content", content, MaxNoteLen); err != nil {
		return err
	}
	if len(tags) > MaxTags {
		return fmt.Errorf("tags exceeds %d entries", MaxTags)
	}
	for _, t := range tags {
		if err := MaxLen("tag", t, MaxTagLen); err != nil {
			return err
		}
	}
	return nil
}
