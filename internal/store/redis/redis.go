// Package redis stores the memory log in a single Redis sorted set.
// Members are JSON-encoded entries scored by creation time in microseconds.
package redis

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
)

// DefaultKey is the sorted set used when no key is configured.
const DefaultKey = "assistant:memories"

// Options configures the Redis-backed store.
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, opts Options) (store.Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, model.NewStorageError("open", err)
	}
	return NewWithClient(client, opts.Key), nil
}

// NewWithClient wraps an existing client. The store owns the client and closes it.
func NewWithClient(client goredis.UniversalClient, key string) store.Store {
	if key == "" {
		key = DefaultKey
	}
	return &redisStore{client: client, key: key}
}

type redisStore struct {
	client goredis.UniversalClient
	key    string
}

func (s *redisStore) Memories() store.Memories { return &memories{client: s.client, key: s.key} }
func (s *redisStore) Close() error             { return s.client.Close() }

// Ping implements health.Pinger.
func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// member is the stored form. ID stays the first field so members with equal
// scores sort by ULID.
type member struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"created_at_us"`
}

type memories struct {
	client goredis.UniversalClient
	key    string
}

func (m *memories) Append(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := store.NewID(now)

	b, err := json.Marshal(member{ID: id, Content: content, Tags: tags, CreatedAt: now.UnixMicro()})
	if err != nil {
		return nil, model.NewStorageError("append", err)
	}
	if err := m.client.ZAdd(ctx, m.key, goredis.Z{Score: float64(now.UnixMicro()), Member: string(b)}).Err(); err != nil {
		return nil, model.NewStorageError("append", err)
	}
	return &model.MemoryEntry{ID: id, Content: content, CreatedAt: now, Tags: tags}, nil
}

func (m *memories) ListRecent(ctx context.Context, limit int) ([]model.MemoryEntry, error) {
	n := store.NormalizeLimit(limit)
	raw, err := m.client.ZRevRange(ctx, m.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, model.NewStorageError("list", err)
	}
	out := make([]model.MemoryEntry, 0, len(raw))
	for _, r := range raw {
		var mb member
		if err := json.Unmarshal([]byte(r), &mb); err != nil {
			return nil, model.NewStorageError("list", err)
		}
		out = append(out, model.MemoryEntry{
			ID:        mb.ID,
			Content:   mb.Content,
			Tags:      mb.Tags,
			CreatedAt: time.UnixMicro(mb.CreatedAt).UTC(),
		})
	}
	return out, nil
}

func (m *memories) ClearAll(ctx context.Context) (int, error) {
	var card *goredis.IntCmd
	_, err := m.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		card = p.ZCard(ctx, m.key)
		p.Del(ctx, m.key)
		return nil
	})
	if err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	return int(card.Val()), nil
}

func (m *memories) Count(ctx context.Context) (int, error) {
	n, err := m.client.ZCard(ctx, m.key).Result()
	if err != nil {
		return 0, model.NewStorageError("count", err)
	}
	return int(n), nil
}
