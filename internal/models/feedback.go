package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackCategory is the closed set of feedback categories.
type FeedbackCategory string

const (
	CategorySession    FeedbackCategory = "session"
	CategoryOverall    FeedbackCategory = "overall"
	CategoryFood       FeedbackCategory = "food"
	CategoryTechBooths FeedbackCategory = "tech-booths"
	CategoryVolunteer  FeedbackCategory = "volunteer"
	CategoryOther      FeedbackCategory = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c FeedbackCategory) bool {
	switch c {
	case CategorySession, CategoryOverall, CategoryFood, CategoryTechBooths, CategoryVolunteer, CategoryOther:
		return true
	}
	return false
}

// Feedback is a rating submitted by an attendee. At most one record exists
// per (category, author) for general categories, and per (category,
// session, author) for session feedback. Records are never updated.
type Feedback struct {
	ID          uuid.UUID        `json:"id"`
	Category    FeedbackCategory `json:"category"`
	SessionID   string           `json:"session_id,omitempty"` // set only when Category == session
	AuthorEmail string           `json:"author_email"`
	Rating      int              `json:"rating"`
	Comment     string           `json:"comment"`
	CreatedAt   time.Time        `json:"created_at"`
}
