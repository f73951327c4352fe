package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting in the job portal. Plain catalog entry, no uniqueness
// constraints.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Experience  string    `json:"experience"`
	Skills      string    `json:"skills"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobApplication is an attendee's application to a job. At most one per
// (applicant email, job). JobID is not foreign-key checked against jobs so
// applications survive posting deletion.
type JobApplication struct {
	ID                 uuid.UUID `json:"id"`
	ApplicantEmail     string    `json:"applicant_email"`
	JobID              uuid.UUID `json:"job_id"`
	JobTitle           string    `json:"job_title"`
	Company            string    `json:"company"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	ResumeS3Key        string    `json:"resume_s3_key,omitempty"`
	ResumeS3URL        string    `json:"resume_s3_url,omitempty"`
	ResumeOriginalName string    `json:"resume_original_name,omitempty"`
	CoverLetter        string    `json:"cover_letter,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
