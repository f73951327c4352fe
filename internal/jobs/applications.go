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
	// ErrAlreadyApplied is returned when the applicant already applied to
	// the job.
	ErrAlreadyApplied = errors.New("already applied for this job")
	// ErrApplicationNotFound is returned when the application does not exist.
	ErrApplicationNotFound = errors.New("job application not found")
)

// ApplicationStore persists job applications. Create must be an atomic
// insert-if-absent on (applicant email, job id).
type ApplicationStore interface {
	Create(ctx context.Context, a *models.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	ListAll(ctx context.Context) ([]models.JobApplication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApplicationRepository is the PostgreSQL ApplicationStore.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates an application repository.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create atomically inserts iff (applicant_email, job_id) is unoccupied.
// The job id is deliberately not checked against the postings table.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.JobApplication) error {
	const q = `INSERT INTO job_applications
		(applicant_email, job_id, job_title, company, name, phone, resume_s3_key, resume_s3_url, resume_original_name, cover_letter)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''), NULLIF($8,''), NULLIF($9,''), NULLIF($10,''))
		ON CONFLICT (applicant_email, job_id) DO NOTHING
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, strings.ToLower(a.ApplicantEmail), a.JobID, a.JobTitle, a.Company, a.Name, a.Phone,
		a.ResumeS3Key, a.ResumeS3URL, a.ResumeOriginalName, a.CoverLetter).
		Scan(&a.ID, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return ErrAlreadyApplied
	}
	return err
}

// GetByID returns one application.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	const q = `SELECT id, applicant_email, job_id, job_title, company, name, phone,
		COALESCE(resume_s3_key,''), COALESCE(resume_s3_url,''), COALESCE(resume_original_name,''), COALESCE(cover_letter,''), created_at
		FROM job_applications WHERE id = $1`
	var a models.JobApplication
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.ApplicantEmail, &a.JobID, &a.JobTitle, &a.Company, &a.Name, &a.Phone,
		&a.ResumeS3Key, &a.ResumeS3URL, &a.ResumeOriginalName, &a.CoverLetter, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAll returns all applications, newest first.
func (r *ApplicationRepository) ListAll(ctx context.Context) ([]models.JobApplication, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, applicant_email, job_id, job_title, company, name, phone,
		COALESCE(resume_s3_key,''), COALESCE(resume_s3_url,''), COALESCE(resume_original_name,''), COALESCE(cover_letter,''), created_at
		FROM job_applications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		if err := rows.Scan(&a.ID, &a.ApplicantEmail, &a.JobID, &a.JobTitle, &a.Company, &a.Name, &a.Phone,
			&a.ResumeS3Key, &a.ResumeS3URL, &a.ResumeOriginalName, &a.CoverLetter, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete removes an application.
func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
