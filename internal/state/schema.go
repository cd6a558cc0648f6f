package state

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/wrld/internal/db"
)

const currentSchemaVersion = 2

func initSchema(ctx context.Context, db *sql.DB) error {
	err := dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS state_blobs (
				storage_key TEXT PRIMARY KEY,
				value TEXT
			);
		`)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)
		`, currentSchemaVersion)
		return err
	})
	if err != nil {
		return err
	}

	// Migration: updated_at was added in version 2
	_, _ = db.ExecContext(ctx, `ALTER TABLE state_blobs ADD COLUMN updated_at INTEGER`)

	return nil
}
