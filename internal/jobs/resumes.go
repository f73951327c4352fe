package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

var (
	// ErrResumeExists is returned when the owner already submitted a
	// resume. There is no update path; the first submission is final.
	ErrResumeExists = errors.New("resume already submitted")
	// ErrResumeNotFound is returned when the resume does not exist.
	ErrResumeNotFound = errors.New("resume not found")
)

// ResumeStore persists resume records. Create must be an atomic
// insert-if-absent on the owner email.
type ResumeStore interface {
	Create(ctx context.Context, r *models.Resume) error
	HasResume(ctx context.Context, ownerEmail string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	ListAll(ctx context.Context) ([]models.Resume, error)
}

// ResumeRepository is the PostgreSQL ResumeStore.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

// NewResumeRepository creates a resume repository.
func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

// Create atomically inserts the record iff no resume exists for the owner.
// The blob referenced by S3Key is uploaded before this call and is left in
// place on conflict.
func (r *ResumeRepository) Create(ctx context.Context, m *models.Resume) error {
	const q = `INSERT INTO resumes (owner_email, name, phone, experience, skills, s3_key, s3_url, original_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_email) DO NOTHING
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, strings.ToLower(m.OwnerEmail), m.Name, m.Phone, m.Experience, m.Skills, m.S3Key, m.S3URL, m.OriginalName).
		Scan(&m.ID, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return ErrResumeExists
	}
	return err
}

// HasResume reports whether the owner has already submitted.
func (r *ResumeRepository) HasResume(ctx context.Context, ownerEmail string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resumes WHERE owner_email = $1)`, strings.ToLower(ownerEmail)).Scan(&exists)
	return exists, err
}

// GetByID returns one resume.
func (r *ResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	const q = `SELECT id, owner_email, name, phone, experience, skills, s3_key, s3_url, original_name, created_at
		FROM resumes WHERE id = $1`
	var m models.Resume
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.OwnerEmail, &m.Name, &m.Phone, &m.Experience, &m.Skills, &m.S3Key, &m.S3URL, &m.OriginalName, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAll returns all resumes, newest first.
func (r *ResumeRepository) ListAll(ctx context.Context) ([]models.Resume, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, owner_email, name, phone, experience, skills, s3_key, s3_url, original_name, created_at
		FROM resumes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Resume
	for rows.Next() {
		var m models.Resume
		if err := rows.Scan(&m.ID, &m.OwnerEmail, &m.Name, &m.Phone, &m.Experience, &m.Skills, &m.S3Key, &m.S3URL, &m.OriginalName, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
