package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-community-vadodara/feedback-hub/config"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

type fakeWhitelist struct {
	entries map[string]*models.WhitelistEntry
}

func (f *fakeWhitelist) FindByEmail(_ context.Context, email string) (*models.WhitelistEntry, error) {
	return f.entries[email], nil
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	creates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[email], nil
}

func (f *fakeUserStore) FindOrCreate(_ context.Context, email, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	u := &models.User{Email: email, Name: name, Role: models.RoleAttendee}
	f.users[email] = u
	f.creates++
	return u, nil
}

func newTestResolver(admin config.AdminConfig) (*Resolver, *fakeUserStore) {
	wl := &fakeWhitelist{entries: map[string]*models.WhitelistEntry{
		"alice@example.com": {Email: "alice@example.com", Name: "Alice", BookingID: "BK-1"},
	}}
	users := newFakeUserStore()
	jwt := NewJWTService("test-secret", 1)
	return NewResolver(wl, users, jwt, admin), users
}

func TestAuthenticateWhitelistedAttendee(t *testing.T) {
	r, users := newTestResolver(config.AdminConfig{})

	id, err := r.Authenticate(context.Background(), "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, id.Role)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)
	assert.NotEmpty(t, id.Token)
	assert.Equal(t, 1, users.creates)

	// Second login reuses the row.
	_, err = r.Authenticate(context.Background(), "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 1, users.creates)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	r, users := newTestResolver(config.AdminConfig{})

	id, err := r.Authenticate(context.Background(), "  Alice@Example.COM ", "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, 1, users.creates)
}

func TestAuthenticateNotWhitelisted(t *testing.T) {
	r, users := newTestResolver(config.AdminConfig{})

	_, err := r.Authenticate(context.Background(), "mallory@example.com", "")
	assert.ErrorIs(t, err, ErrNotWhitelisted)
	assert.Zero(t, users.creates)
}

func TestAuthenticateAdmin(t *testing.T) {
	admin := config.AdminConfig{Email: "admin@example.com", Password: "s3cret"}
	r, users := newTestResolver(admin)

	id, err := r.Authenticate(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, id.Role)
	assert.NotEmpty(t, id.Token)
	// Admin identity never touches the user table.
	assert.Zero(t, users.creates)
}

func TestAuthenticateAdminWrongPassword(t *testing.T) {
	admin := config.AdminConfig{Email: "admin@example.com", Password: "s3cret"}
	r, _ := newTestResolver(admin)

	// Wrong password drops to the attendee path; admin email is not
	// whitelisted, so the request is rejected.
	_, err := r.Authenticate(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrNotWhitelisted)
}

func TestAuthenticateAdminNotConfigured(t *testing.T) {
	r, _ := newTestResolver(config.AdminConfig{Email: "admin@example.com"})

	// No password and no hash configured: admin login is disabled.
	_, err := r.Authenticate(context.Background(), "admin@example.com", "")
	assert.ErrorIs(t, err, ErrNotWhitelisted)
}
