package jobs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// ErrJobNotFound is returned when a posting does not exist.
var ErrJobNotFound = errors.New("job not found")

// Repository handles job posting persistence. Postings are a plain catalog
// with no uniqueness constraints.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a jobs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all postings, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Job, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, company, location, experience, skills, description, created_at
		FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Experience, &j.Skills, &j.Description, &j.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, j)
	}
	return list, rows.Err()
}

// Create inserts a posting.
func (r *Repository) Create(ctx context.Context, j *models.Job) error {
	const q = `INSERT INTO jobs (title, company, location, experience, skills, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, j.Title, j.Company, j.Location, j.Experience, j.Skills, j.Description).
		Scan(&j.ID, &j.CreatedAt)
}

// CreateMany appends postings in one transaction. CSV import is additive,
// unlike the whitelist and session imports.
func (r *Repository) CreateMany(ctx context.Context, list []models.Job) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for i := range list {
		err := tx.QueryRow(ctx, `INSERT INTO jobs (title, company, location, experience, skills, description)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
			list[i].Title, list[i].Company, list[i].Location, list[i].Experience, list[i].Skills, list[i].Description).
			Scan(&list[i].ID, &list[i].CreatedAt)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(list), nil
}

// Delete removes a posting. Existing applications keep their job_id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}
