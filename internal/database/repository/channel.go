package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/artur/videohub/internal/database"
	"github.com/artur/videohub/internal/database/models"
)

// ChannelRepository handles channel cache persistence
type ChannelRepository struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used for saved_at/last_used_at.
func (r *ChannelRepository) WithClock(now func() time.Time) *ChannelRepository {
	r.now = now
	return r
}

// Upsert inserts the channel or refreshes its last-known values.
// A nil title or thumbnail never overwrites a stored value. Empty id is a no-op.
func (r *ChannelRepository) Upsert(ctx context.Context, id string, title, thumbnail *string) error {
	if id == "" {
		return nil
	}

	now := database.FormatTime(r.now())

	// The insert-or-update is one statement, so the existence check and the
	// write cannot interleave with another upsert of the same id.
	query := `
		INSERT INTO channels (id, title, thumbnail, saved_at, last_used_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = COALESCE(excluded.title, channels.title),
			thumbnail = COALESCE(excluded.thumbnail, channels.thumbnail),
			saved_at = COALESCE(channels.saved_at, excluded.saved_at),
			last_used_at = MAX(COALESCE(channels.last_used_at, excluded.last_used_at), excluded.last_used_at)
	`

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin channel upsert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, id, nullable(title), nullable(thumbnail), now, now); err != nil {
		return fmt.Errorf("failed to upsert channel: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit channel upsert: %w", err)
	}
	return nil
}

// Get looks up a single channel by id. It returns nil, nil when the channel
// is unknown. The HTTP surface only lists; Get serves callers that need one
// record, such as tests and maintenance tooling.
func (r *ChannelRepository) Get(ctx context.Context, id string) (*models.Channel, error) {
	query := `
		SELECT id, title, thumbnail, saved_at, last_used_at
		FROM channels
		WHERE id = ?
	`

	channel, err := scanChannel(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return channel, nil
}

// List returns all channels, most recently used first
func (r *ChannelRepository) List(ctx context.Context) ([]models.Channel, error) {
	query := `
		SELECT id, title, thumbnail, saved_at, last_used_at
		FROM channels
		ORDER BY last_used_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	channels := make([]models.Channel, 0)
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, *channel)
	}

	return channels, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChannel(s scanner) (*models.Channel, error) {
	channel := &models.Channel{}
	var title, thumbnail, savedAt, lastUsedAt sql.NullString

	if err := s.Scan(&channel.ID, &title, &thumbnail, &savedAt, &lastUsedAt); err != nil {
		return nil, err
	}

	var err error
	if channel.SavedAt, err = parseTime(savedAt); err != nil {
		return nil, fmt.Errorf("channel %s saved_at: %w", channel.ID, err)
	}
	if channel.LastUsedAt, err = parseTime(lastUsedAt); err != nil {
		return nil, fmt.Errorf("channel %s last_used_at: %w", channel.ID, err)
	}

	if title.Valid {
		channel.Title = &title.String
	}
	if thumbnail.Valid {
		channel.Thumbnail = &thumbnail.String
	}
	return channel, nil
}

// parseTime maps NULL, possible in tables created by older deployments, to
// the zero time.
func parseTime(v sql.NullString) (time.Time, error) {
	if !v.Valid {
		return time.Time{}, nil
	}
	return database.ParseTime(v.String)
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
