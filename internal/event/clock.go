package event

import (
	"context"
	"time"
)

// Clock is the event start gate. It is a pure gate: no timers, no
// callbacks; callers poll it at the moment of a guarded action.
type Clock struct {
	store SettingsStore
}

// NewClock creates an event clock over the settings store.
func NewClock(store SettingsStore) *Clock {
	return &Clock{store: store}
}

// HasStarted reports whether now is at or after the event start instant.
// The boundary is inclusive: the gate opens exactly at the start instant.
func (c *Clock) HasStarted(ctx context.Context, now time.Time) (bool, error) {
	settings, err := c.store.Get(ctx)
	if err != nil {
		return false, err
	}
	return !now.Before(settings.EventStartAt), nil
}
