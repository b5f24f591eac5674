package validate

import (
	"strings"
	"testing"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

func TestChatMessage(t *testing.T) {
	ok := []model.Turn{{Role: model.RoleUser, Content: "hi"}, {Role: model.RoleAssistant, Content: "hello"}}
	if err := ChatMessage("how are you", ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []struct {
		name    string
		msg     string
		history []model.Turn
	}{
		{"empty", "  ", nil},
		{"too long", strings.Repeat("x", MaxMessageLen+1), nil},
		{"bad role", "hi", []model.Turn{{Role: "system", Content: "x"}}},
		{"too many turns", "hi", make([]model.Turn, MaxHistory+1)},
	}
	for _, tc := range bad {
		if err := ChatMessage(tc.msg, tc.history); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestMemoryNote(t *testing.T) {
	if err := MemoryNote("likes tea", []string{"food"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := MemoryNote("", nil); err == nil {
		t.Fatalf("expected error for empty content")
	}
	if err := MemoryNote(strings.Repeat("a", MaxNoteLen+1), nil); err == nil {
		t.Fatalf("expected error for long content")
	}
	if err := MemoryNote("x", []string{strings.Repeat("t", MaxTagLen+1)}); err == nil {
		t.Fatalf("expected error for long tag")
	}
}

func TestLimit(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"5", 5, false},
		{"100", 100, false},
		{"0", 0, true},
		{"101", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := Limit(tc.raw, 100)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("Limit(%q) = %d, %v", tc.raw, got, err)
		}
	}
}
