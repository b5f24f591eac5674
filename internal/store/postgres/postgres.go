package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the memory table when missing. Safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assistant_memories (
            memory_id     TEXT PRIMARY KEY,
            content       TEXT NOT NULL,
            tags          JSONB,
            creation_time TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS assistant_memories_recent_idx
            ON assistant_memories (creation_time DESC, memory_id DESC)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// New opens dsn, migrates and returns a store.
func New(ctx context.Context, dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, model.NewStorageError("open", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, model.NewStorageError("migrate", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Memories() store.Memories { return &memories{db: s.db} }
func (s *pgStore) Close() error             { return s.db.Close() }

// Ping implements health.Pinger.
func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type memories struct{ db *sql.DB }

func (m *memories) Append(ctx context.Context, content string, tags []string) (*model.MemoryEntry, error) {
	// timestamptz keeps microseconds; truncate so the returned entry matches what is read back
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := store.NewID(now)

	var tagsJSON []byte
	if len(tags) > 0 {
		b, err := json.Marshal(tags)
		if err != nil {
			return nil, model.NewStorageError("append", err)
		}
		tagsJSON = b
	}

	_, err := m.db.ExecContext(ctx, `
        INSERT INTO assistant_memories (memory_id, content, tags, creation_time)
        VALUES ($1,$2,$3,$4)
    `, id, content, tagsJSON, now)
	if err != nil {
		return nil, model.NewStorageError("append", err)
	}
	return &model.MemoryEntry{ID: id, Content: content, CreatedAt: now, Tags: tags}, nil
}

func (m *memories) ListRecent(ctx context.Context, limit int) ([]model.MemoryEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
        SELECT memory_id, content, tags, creation_time
        FROM assistant_memories
        ORDER BY creation_time DESC, memory_id DESC
        LIMIT $1
    `, store.NormalizeLimit(limit))
	if err != nil {
		return nil, model.NewStorageError("list", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.MemoryEntry{}
	for rows.Next() {
		var e model.MemoryEntry
		var tags []byte
		if err := rows.Scan(&e.ID, &e.Content, &tags, &e.CreatedAt); err != nil {
			return nil, model.NewStorageError("list", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		if len(tags) > 0 {
			_ = json.Unmarshal(tags, &e.Tags)
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

	// blocks concurrent inserts so the reported count is exact
	if _, err := tx.ExecContext(ctx, `LOCK TABLE assistant_memories IN EXCLUSIVE MODE`); err != nil {
		return 0, model.NewStorageError("clear", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM assistant_memories`)
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
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assistant_memories`).Scan(&n); err != nil {
		return 0, model.NewStorageError("count", err)
	}
	return n, nil
}
