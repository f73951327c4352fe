package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is a submitted resume. One per owner email, permanently; there is
// no update path once submitted.
type Resume struct {
	ID           uuid.UUID `json:"id"`
	OwnerEmail   string    `json:"owner_email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Experience   string    `json:"experience"`
	Skills       string    `json:"skills"`
	S3Key        string    `json:"s3_key"`
	S3URL        string    `json:"s3_url"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}
