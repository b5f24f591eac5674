package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
)

// New opens the database at path, applies the schema and returns a store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, model.NewStorageError("open", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, model.NewStorageError("migrate", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store around an existing connection with the schema applied.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Memories() store.Memories { return &memories{db: s.db} }
func (s *sqliteStore) Close() error             { return s.db.Close() }

// DB exposes the underlying connection (tests, health checks).
func (s *sqliteStore) DB() *sql.DB { return s.db }

// Ping implements health.Pinger.
func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type memories struct{ db *sql.DB }

func (m *memories) Append(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error) {
	now := time.Now().UTC()
	id := store.NewID(now)

	var tagsJSON *string
	if len(tags) > 0 {
		b, err := json.Marshal(tags)
		if err != nil {
			return nil, model.NewStorageError("append", err)
		}
		s := string(b)
		tagsJSON = &s
	}

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO AssistantMemories (MemoryId, Content, Tags, CreatedAt) VALUES (?,?,?,?)`,
		id, content, tagsJSON, now.UnixNano())
	if err != nil {
		return nil, model.NewStorageError("append", err)
	}
	return &model.MemoryEntry{ID: id, Content: content, CreatedAt: now, Tags: tags}, nil
}

func (m *memories) ListRecent(ctx context.Context, limit int) ([]model.MemoryEntry, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT MemoryId, Content, Tags, CreatedAt FROM AssistantMemories
         ORDER BY CreatedAt DESC, MemoryId DESC LIMIT ?`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, model.NewStorageError("list", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.MemoryEntry{}
	for rows.Next() {
		var e model.MemoryEntry
		var tags sql.NullString
		var created int64
		if err := rows.Scan(&e.ID, &e.Content, &tags, &created); err != nil {
			return nil, model.NewStorageError("list", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
				return nil, model.NewStorageError("list", fmt.Errorf("memory %s: decode tags: %w", e.ID, err))
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("list", err)
	}
	return out, nil
}

func (m *memories) ClearAll(ctx context.Context) (int, error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM AssistantMemories`)
	if err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	return int(n), nil
}

func (m *memories) Count(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM AssistantMemories`).Scan(&n); err != nil {
		return 0, model.NewStorageError("count", err)
	}
	return n, nil
}
