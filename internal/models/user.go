package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user role. There are exactly two: admin identity comes
// from configured credentials and is never persisted; attendee rows are
// created lazily on first whitelisted login.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAttendee Role = "attendee"
)

// User is an attendee identity materialized on first successful login.
// Email is unique and stored lowercase.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
