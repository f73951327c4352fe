package models

import (
	"time"

	"github.com/google/uuid"
)

// WhitelistEntry is a pre-approved attendee. Only emails present here may
// authenticate as attendees. Email is unique and stored lowercase.
type WhitelistEntry struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	BookingID string    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
