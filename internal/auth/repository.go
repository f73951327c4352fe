package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// UserStore persists attendee identities.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindOrCreate returns the existing user for email or creates one with
	// the given name. Concurrent first logins for the same email must both
	// succeed and observe a single row.
	FindOrCreate(ctx context.Context, email, name string) (*models.User, error)
}

// Repository is the PostgreSQL UserStore.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByEmail returns a user by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, name, role, created_at, updated_at FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreate inserts the user if absent. The insert is guarded by the
// unique constraint on email; when another request wins the race the insert
// affects no rows and the existing row is re-read.
func (r *Repository) FindOrCreate(ctx context.Context, email, name string) (*models.User, error) {
	const q = `INSERT INTO users (email, name, role) VALUES ($1, $2, 'attendee')
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, name, role, created_at, updated_at`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email, name).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == nil {
		return &u, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Row vanished between insert and re-read; surface as store error.
		return nil, pgx.ErrNoRows
	}
	return existing, nil
}
