package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrate runs all database migrations. Every step is idempotent.
func (db *DB) Migrate() error {
	log.Printf("[DB] Running migrations...")

	migrations := []string{
		// Channel cache
		`CREATE TABLE IF NOT EXISTS channels (
			id TEXT PRIMARY KEY,
			title TEXT,
			thumbnail TEXT,
			saved_at DATETIME NOT NULL,
			last_used_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_channels_last_used_at ON channels(last_used_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	if err := db.normalizeChannelTimes(); err != nil {
		return fmt.Errorf("failed to normalize channel timestamps: %w", err)
	}

	log.Printf("[DB] Migrations completed successfully")
	return nil
}

// normalizeChannelTimes rewrites ISO "T"-separated timestamps left by older
// deployments into TimeLayout. NULLs are kept.
func (db *DB) normalizeChannelTimes() error {
	rows, err := db.Query(`
		SELECT id, saved_at, last_used_at
		FROM channels
		WHERE instr(saved_at, 'T') > 0 OR instr(last_used_at, 'T') > 0
	`)
	if err != nil {
		return err
	}

	type legacyRow struct {
		id                string
		savedAt, lastUsed sql.NullString
	}
	var legacy []legacyRow
	for rows.Next() {
		var r legacyRow
		if err := rows.Scan(&r.id, &r.savedAt, &r.lastUsed); err != nil {
			rows.Close()
			return err
		}
		legacy = append(legacy, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(legacy) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range legacy {
		savedAt, err := normalized(r.savedAt)
		if err != nil {
			return fmt.Errorf("channel %s: %w", r.id, err)
		}
		lastUsed, err := normalized(r.lastUsed)
		if err != nil {
			return fmt.Errorf("channel %s: %w", r.id, err)
		}
		if _, err := tx.Exec(`UPDATE channels SET saved_at = ?, last_used_at = ? WHERE id = ?`, savedAt, lastUsed, r.id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("[DB] Normalized timestamps of %d channels", len(legacy))
	return nil
}

func normalized(v sql.NullString) (sql.NullString, error) {
	if !v.Valid {
		return v, nil
	}
	t, err := ParseTime(v.String)
	if err != nil {
		return v, err
	}
	return sql.NullString{String: FormatTime(t), Valid: true}, nil
}
