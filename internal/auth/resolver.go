package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/aws-community-vadodara/feedback-hub/config"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
	"github.com/aws-community-vadodara/feedback-hub/pkg/utils"
)

var (
	// ErrNotWhitelisted is returned when the email is not in the attendee
	// list. An expected outcome, not a server fault.
	ErrNotWhitelisted = errors.New("email not found in attendee list")
)

// WhitelistLookup resolves pre-approved attendee emails.
type WhitelistLookup interface {
	// FindByEmail returns the entry for the lowercased email, or nil when absent.
	FindByEmail(ctx context.Context, email string) (*models.WhitelistEntry, error)
}

// Identity is the result of a successful authentication.
type Identity struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
}

// Resolver decides admin vs. attendee vs. rejected and issues tokens.
// Admin identity comes from configured credentials and never touches the
// user table; attendees authenticate by whitelisted email alone.
type Resolver struct {
	whitelist WhitelistLookup
	users     UserStore
	jwt       *JWTService
	admin     config.AdminConfig
}

// NewResolver creates an identity resolver.
func NewResolver(whitelist WhitelistLookup, users UserStore, jwt *JWTService, admin config.AdminConfig) *Resolver {
	return &Resolver{whitelist: whitelist, users: users, jwt: jwt, admin: admin}
}

// Authenticate issues a token for the credentials, or ErrNotWhitelisted.
// The password is only meaningful for admin login; attendee login ignores it.
func (r *Resolver) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	if r.isAdmin(email, password) {
		token, err := r.jwt.Generate(email, models.RoleAdmin, "")
		if err != nil {
			return nil, err
		}
		return &Identity{Token: token, Role: models.RoleAdmin, Email: email}, nil
	}

	lower := strings.ToLower(strings.TrimSpace(email))
	entry, err := r.whitelist.FindByEmail(ctx, lower)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotWhitelisted
	}

	// Name is copied from the whitelist entry at creation time only; later
	// whitelist edits do not propagate to the user row.
	user, err := r.users.FindOrCreate(ctx, lower, entry.Name)
	if err != nil {
		return nil, err
	}

	token, err := r.jwt.Generate(user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &Identity{Token: token, Role: user.Role, Email: user.Email, Name: user.Name}, nil
}

func (r *Resolver) isAdmin(email, password string) bool {
	if r.admin.Email == "" || email != r.admin.Email {
		return false
	}
	if r.admin.PasswordHash != "" {
		return utils.CheckPassword(password, r.admin.PasswordHash)
	}
	if r.admin.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(r.admin.Password)) == 1
}
