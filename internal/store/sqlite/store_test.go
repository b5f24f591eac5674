package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "assistant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}

func TestSQLiteStore_SerializedCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return store.Serialized(makeSQLiteStore(t)) })
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Memories().Append(ctx, "prefers morning meetings", []string{"preference"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := New(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()
	got, err := s2.Memories().ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "prefers morning meetings", got[0].Content)
	require.Equal(t, []string{"preference"}, got[0].Tags)
}

func TestSQLiteStore_ClosedDBIsStorageError(t *testing.T) {
	s := makeSQLiteStore(t)
	require.NoError(t, s.Close())

	_, err := s.Memories().Append(context.Background(), "x", nil)
	require.Error(t, err)
	require.True(t, model.IsStorageError(err))
}

func TestSQLiteStore_CorruptTagsIsStorageError(t *testing.T) {
	s := makeSQLiteStore(t)
	ctx := context.Background()
	_, err := s.Memories().Append(ctx, "likes tea", []string{"chat"})
	require.NoError(t, err)

	db := s.(interface{ DB() *sql.DB }).DB()
	_, err = db.ExecContext(ctx, `UPDATE AssistantMemories SET Tags = ?`, `{not json`)
	require.NoError(t, err)

	_, err = s.Memories().ListRecent(ctx, 5)
	require.Error(t, err)
	require.True(t, model.IsStorageError(err))
	require.Contains(t, err.Error(), "decode tags")
}
