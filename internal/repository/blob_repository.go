package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Blob keys for the two persisted state documents.
const (
	BlobKeyScheduleData     = "scheduleData"
	BlobKeyScheduleSettings = "scheduleSettings"
)

// ErrBlobNotFound is returned when a blob key has never been written.
var ErrBlobNotFound = errors.New("blob not found")

// BlobRepository persists opaque JSON documents keyed by name.
type BlobRepository struct {
	db *sql.DB
}

func NewBlobRepository(db *sql.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Get returns the stored document for key, or ErrBlobNotFound.
func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Upsert stores the document under key, replacing any previous value.
func (r *BlobRepository) Upsert(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC())
	return err
}
