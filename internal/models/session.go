package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a talk in the event agenda. SessionID is the stable business
// key referenced by session feedback; it is unique.
type Session struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	Speaker   string    `json:"speaker"`
	Time      string    `json:"time"`
	Room      string    `json:"room"`
	Track     string    `json:"track"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
