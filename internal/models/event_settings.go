package models

import "time"

// EventSettings is the singleton row holding the event start instant. It is
// lazily created with configured defaults on first read, so EventStartAt is
// never absent.
type EventSettings struct {
	EventStartAt time.Time `json:"event_start_at"`
	EventName    string    `json:"event_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}
