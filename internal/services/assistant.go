package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/aggregator"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/conversation"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/metrics"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/suggest"
)

const (
	// MaxMessageLength bounds a chat utterance in characters.
	MaxMessageLength = 4000
	// MaxTags bounds the tags on a manual note.
	MaxTags = 10

	TagChat   = "chat"
	TagManual = "manual"
)

// Options bound how much memory the service reads.
type Options struct {
	MemoryContextLimit int
	MemoryListLimit    int
}

// AssistantService orchestrates chat, suggestions and memory use cases.
type AssistantService struct {
	store   store.Store
	agg     *aggregator.Aggregator
	suggest *suggest.Engine
	conv    *conversation.Engine
	opts    Options
	log     zerolog.Logger
}

func NewAssistantService(s store.Store, agg *aggregator.Aggregator, se *suggest.Engine, conv *conversation.Engine, opts Options, log zerolog.Logger) *AssistantService {
	if opts.MemoryContextLimit <= 0 {
		opts.MemoryContextLimit = store.DefaultListLimit
	}
	if opts.MemoryListLimit <= 0 || opts.MemoryListLimit > store.MaxListLimit {
		opts.MemoryListLimit = store.MaxListLimit
	}
	return &AssistantService{store: s, agg: agg, suggest: se, conv: conv, opts: opts, log: log}
}

// Chat answers one utterance and persists an explicitly requested fact.
// Only validation errors are returned; storage trouble degrades silently.
func (s *AssistantService) Chat(ctx context.Context, utterance string, history []model.Turn) (string, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", model.NewValidationError("message", "must not be empty")
	}
	if utf8.RuneCountInString(utterance) > MaxMessageLength {
		return "", model.NewValidationError("message", "too long")
	}

	prior, err := s.store.Memories().ListRecent(ctx, s.opts.MemoryContextLimit)
	if err != nil {
		s.log.Warn().Err(err).Msg("memory read failed; chatting without context")
		prior = nil
	}

	reply := s.conv.Respond(ctx, utterance, prior, history)
	if reply.ShouldRemember {
		if _, err := s.store.Memories().Append(ctx, reply.ExtractedFact, []string{TagChat}); err != nil {
			metrics.MemoryWriteFailures.Inc()
			s.log.Error().Err(err).Msg("failed to persist chat fact")
		} else {
			metrics.MemoriesRemembered.WithLabelValues(TagChat).Inc()
			s.log.Debug().Int("fact_len", len(reply.ExtractedFact)).Msg("chat fact remembered")
		}
	}
	return reply.Text, nil
}

// Suggestions computes proactive suggestions from a fresh snapshot.
func (s *AssistantService) Suggestions(ctx context.Context) []model.Suggestion {
	snap := s.agg.Snapshot(ctx)

	recent, err := s.store.Memories().ListRecent(ctx, 1)
	if err != nil {
		s.log.Warn().Err(err).Msg("memory read failed; skipping memory suggestions")
		metrics.RecordUpstreamFailure(model.SourceMemory)
		snap.MarkUnavailable(model.SourceMemory)
		recent = nil
	}
	return s.suggest.Generate(snap, recent)
}

// Memory lists recent entries, newest first. Read failures yield an empty list.
func (s *AssistantService) Memory(ctx context.Context, limit int) []model.MemoryEntry {
	if limit <= 0 || limit > s.opts.MemoryListLimit {
		limit = s.opts.MemoryListLimit
	}
	entries, err := s.store.Memories().ListRecent(ctx, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("memory read failed; returning empty list")
		return []model.MemoryEntry{}
	}
	return entries
}

// ClearMemory removes every entry and reports how many were removed.
func (s *AssistantService) ClearMemory(ctx context.Context) (int, error) {
	n, err := s.store.Memories().ClearAll(ctx)
	if err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	s.log.Info().Int("removed", n).Msg("memory cleared")
	return n, nil
}

// Remember stores a note entered directly by the user.
func (s *AssistantService) Remember(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error) {
	content = strings.Join(strings.Fields(content), " ")
	if content == "" {
		return nil, model.NewValidationError("content", "must not be empty")
	}
	if utf8.RuneCountInString(content) > conversation.MaxFactLength {
		return nil, model.NewValidationError("content", "too long")
	}
	cleaned, err := normalizeTags(tags)
	if err != nil {
		return nil, err
	}

	e, err := s.store.Memories().Append(ctx, content, cleaned)
	if err != nil {
		return nil, model.NewStorageError("append", err)
	}
	metrics.MemoriesRemembered.WithLabelValues(TagManual).Inc()
	return e, nil
}

// Stats reports memory statistics.
func (s *AssistantService) Stats(ctx context.Context) (model.Stats, error) {
	n, err := s.store.Memories().Count(ctx)
	if err != nil {
		return model.Stats{}, model.NewStorageError("count", err)
	}
	return model.Stats{Memories: n}, nil
}

// normalizeTags lowercases, dedupes and always includes the manual tag first.
func normalizeTags(tags []string) ([]string, error) {
	out := []string{TagManual}
	seen := map[string]bool{TagManual: true}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		if len(t) > 32 {
			return nil, model.NewValidationError("tags", "tag too long")
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return nil, model.NewValidationError("tags", "too many tags")
	}
	return out, nil
}
