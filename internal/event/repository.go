package event

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/config"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// SettingsStore persists the singleton event settings row.
type SettingsStore interface {
	// Get returns the settings, creating the row with defaults when absent.
	// The start instant is therefore never missing.
	Get(ctx context.Context) (*models.EventSettings, error)
	// Update replaces the settings fields. No history is kept.
	Update(ctx context.Context, startAt time.Time, name string) (*models.EventSettings, error)
}

// Repository is the PostgreSQL SettingsStore. The row is keyed by a fixed
// id of 1 so concurrent create-default races collapse onto one row.
type Repository struct {
	pool     *pgxpool.Pool
	defaults config.EventConfig
}

// NewRepository creates an event settings repository.
func NewRepository(pool *pgxpool.Pool, defaults config.EventConfig) *Repository {
	return &Repository{pool: pool, defaults: defaults}
}

// Get reads the singleton, inserting the configured defaults first. The
// insert is a no-op when the row exists; a losing concurrent insert simply
// reads the winner's row.
func (r *Repository) Get(ctx context.Context) (*models.EventSettings, error) {
	const upsert = `INSERT INTO event_settings (id, event_start_at, event_name) VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, upsert, r.defaults.DefaultStartAt, r.defaults.DefaultName); err != nil {
		return nil, err
	}
	const q = `SELECT event_start_at, event_name, updated_at FROM event_settings WHERE id = 1`
	var s models.EventSettings
	if err := r.pool.QueryRow(ctx, q).Scan(&s.EventStartAt, &s.EventName, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces the singleton's fields, creating the row if needed. There
// is deliberately no check that startAt is in the future.
func (r *Repository) Update(ctx context.Context, startAt time.Time, name string) (*models.EventSettings, error) {
	const q = `INSERT INTO event_settings (id, event_start_at, event_name) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET event_start_at = EXCLUDED.event_start_at, event_name = EXCLUDED.event_name, updated_at = NOW()
		RETURNING event_start_at, event_name, updated_at`
	var s models.EventSettings
	if err := r.pool.QueryRow(ctx, q, startAt, name).Scan(&s.EventStartAt, &s.EventName, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
