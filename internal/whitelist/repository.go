package whitelist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

var (
	// ErrEmailExists is returned when a create or update collides with an
	// existing whitelist email.
	ErrEmailExists = errors.New("email already exists")
	// ErrNotFound is returned when the entry does not exist.
	ErrNotFound = errors.New("attendee not found")
)

// Repository handles whitelist persistence. It is the source of truth for
// which emails may authenticate as attendees.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a whitelist repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail returns the entry for the email (case-insensitive), or nil
// when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.WhitelistEntry, error) {
	const q = `SELECT id, email, name, booking_id, created_at, updated_at FROM whitelist WHERE email = $1`
	var e models.WhitelistEntry
	err := r.pool.QueryRow(ctx, q, strings.ToLower(email)).Scan(&e.ID, &e.Email, &e.Name, &e.BookingID, &e.CreatedAt, &e.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all entries ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.WhitelistEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, booking_id, created_at, updated_at FROM whitelist ORDER BY name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.WhitelistEntry
	for rows.Next() {
		var e models.WhitelistEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.Name, &e.BookingID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create inserts a new entry. Duplicate email returns ErrEmailExists.
func (r *Repository) Create(ctx context.Context, email, name, bookingID string) (*models.WhitelistEntry, error) {
	const q = `INSERT INTO whitelist (email, name, booking_id) VALUES ($1, $2, $3)
		RETURNING id, email, name, booking_id, created_at, updated_at`
	var e models.WhitelistEntry
	err := r.pool.QueryRow(ctx, q, strings.ToLower(email), name, bookingID).
		Scan(&e.ID, &e.Email, &e.Name, &e.BookingID, &e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the entry's fields. Explicit admin edit only.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, email, name, bookingID string) (*models.WhitelistEntry, error) {
	const q = `UPDATE whitelist SET email = $2, name = $3, booking_id = $4, updated_at = NOW() WHERE id = $1
		RETURNING id, email, name, booking_id, created_at, updated_at`
	var e models.WhitelistEntry
	err := r.pool.QueryRow(ctx, q, id, strings.ToLower(email), name, bookingID).
		Scan(&e.ID, &e.Email, &e.Name, &e.BookingID, &e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry. Already-issued tokens stay valid; deletion does
// not revoke access.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM whitelist WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of whitelist entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM whitelist`).Scan(&n)
	return n, err
}

// ReplaceAll atomically replaces the whole whitelist with the given entries.
// Duplicate emails within the batch keep the first occurrence.
func (r *Repository) ReplaceAll(ctx context.Context, entries []models.WhitelistEntry) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM whitelist`); err != nil {
		return 0, err
	}

	inserted := 0
	for _, e := range entries {
		tag, err := tx.Exec(ctx,
			`INSERT INTO whitelist (email, name, booking_id) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING`,
			strings.ToLower(e.Email), e.Name, e.BookingID)
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
