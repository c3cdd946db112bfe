package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *BlobRepository {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE blobs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)

	return NewBlobRepository(db)
}

func TestBlobRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), BlobKeyScheduleData)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobRepository_UpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, BlobKeyScheduleData, []byte(`{"a":1}`)))

	raw, err := repo.Get(ctx, BlobKeyScheduleData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))
}

func TestBlobRepository_UpsertReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, BlobKeyScheduleSettings, []byte(`{"v":1}`)))
	require.NoError(t, repo.Upsert(ctx, BlobKeyScheduleSettings, []byte(`{"v":2}`)))

	raw, err := repo.Get(ctx, BlobKeyScheduleSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(raw))
}

func TestBlobRepository_KeysAreIndependent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, BlobKeyScheduleData, []byte(`{"data":true}`)))
	require.NoError(t, repo.Upsert(ctx, BlobKeyScheduleSettings, []byte(`{"settings":true}`)))

	data, err := repo.Get(ctx, BlobKeyScheduleData)
	require.NoError(t, err)
	settings, err := repo.Get(ctx, BlobKeyScheduleSettings)
	require.NoError(t, err)

	assert.NotEqual(t, string(data), string(settings))
}
