package sessions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

var (
	// ErrSessionIDExists is returned when a create or update collides with
	// an existing session business key.
	ErrSessionIDExists = errors.New("session ID already exists")
	// ErrNotFound is returned when the session does not exist.
	ErrNotFound = errors.New("session not found")
)

// Repository handles session catalog persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a sessions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Exists reports whether the session business key is known. Used to
// validate session-scoped feedback.
func (r *Repository) Exists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessions WHERE session_id = $1)`, sessionID).Scan(&exists)
	return exists, err
}

// List returns all sessions ordered by time.
func (r *Repository) List(ctx context.Context) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, session_id, title, speaker, time, room, track, created_at, updated_at FROM sessions ORDER BY time, session_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Title, &s.Speaker, &s.Time, &s.Room, &s.Track, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetBySessionID returns one session by business key.
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error) {
	const q = `SELECT id, session_id, title, speaker, time, room, track, created_at, updated_at FROM sessions WHERE session_id = $1`
	var s models.Session
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(&s.ID, &s.SessionID, &s.Title, &s.Speaker, &s.Time, &s.Room, &s.Track, &s.CreatedAt, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a session. Duplicate session_id returns ErrSessionIDExists.
func (r *Repository) Create(ctx context.Context, s *models.Session) error {
	const q = `INSERT INTO sessions (session_id, title, speaker, time, room, track) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, s.SessionID, s.Title, s.Speaker, s.Time, s.Room, s.Track).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrSessionIDExists
	}
	return err
}

// Update replaces a session's fields by row id.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, s *models.Session) error {
	const q = `UPDATE sessions SET session_id = $2, title = $3, speaker = $4, time = $5, room = $6, track = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, id, s.SessionID, s.Title, s.Speaker, s.Time, s.Room, s.Track).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrSessionIDExists
	}
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// Delete removes a session by row id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of sessions.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	return n, err
}

// ReplaceAll atomically replaces the whole catalog with the given sessions.
func (r *Repository) ReplaceAll(ctx context.Context, list []models.Session) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sessions`); err != nil {
		return 0, err
	}

	inserted := 0
	for _, s := range list {
		tag, err := tx.Exec(ctx,
			`INSERT INTO sessions (session_id, title, speaker, time, room, track) VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (session_id) DO NOTHING`,
			s.SessionID, s.Title, s.Speaker, s.Time, s.Room, s.Track)
		if err != nil {
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
