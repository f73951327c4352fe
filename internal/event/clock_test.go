package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

type fakeSettingsStore struct {
	settings models.EventSettings
}

func (f *fakeSettingsStore) Get(context.Context) (*models.EventSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettingsStore) Update(_ context.Context, startAt time.Time, name string) (*models.EventSettings, error) {
	f.settings.EventStartAt = startAt
	f.settings.EventName = name
	return f.Get(context.Background())
}

func TestClockHasStarted(t *testing.T) {
	start := time.Date(2025, 9, 9, 18, 0, 0, 0, time.UTC)
	clock := NewClock(&fakeSettingsStore{settings: models.EventSettings{EventStartAt: start}})

	before, err := clock.HasStarted(context.Background(), start.Add(-time.Second))
	require.NoError(t, err)
	assert.False(t, before)

	// The boundary is inclusive: the gate opens exactly at the start instant.
	at, err := clock.HasStarted(context.Background(), start)
	require.NoError(t, err)
	assert.True(t, at)

	after, err := clock.HasStarted(context.Background(), start.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, after)
}

func TestClockFollowsUpdatedStart(t *testing.T) {
	start := time.Date(2025, 9, 9, 18, 0, 0, 0, time.UTC)
	store := &fakeSettingsStore{settings: models.EventSettings{EventStartAt: start}}
	clock := NewClock(store)

	now := start.Add(time.Hour)
	started, err := clock.HasStarted(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, started)

	// Push the start into the future; the gate closes again.
	_, err = store.Update(context.Background(), now.Add(time.Hour), "Community Day")
	require.NoError(t, err)

	started, err = clock.HasStarted(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, started)
}
