package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/weekplan/weekplan-backend/internal/config"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// NewSQLite opens (creating if necessary) the local SQLite database that
// holds the persisted schedule blobs and applies the schema.
func NewSQLite(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.DataPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The driver is in-process; a single writer avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	log.Info().
		Str("path", cfg.DataPath).
		Msg("SQLite opened")

	return db, nil
}
