package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

var (
	// ErrUnknownSession is returned when session feedback names a session
	// the registry does not know. No record is written.
	ErrUnknownSession = errors.New("session not found")
	// ErrValidation wraps payload validation failures.
	ErrValidation = errors.New("invalid feedback")
)

// SessionChecker resolves session business keys. Implemented by
// sessions.Repository.
type SessionChecker interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// SubmitInput is a feedback submission before guarding.
type SubmitInput struct {
	Category  models.FeedbackCategory
	SessionID string
	Rating    int
	Comment   string
}

// Guard enforces the feedback submission invariants: payload validity,
// session resolvability, and at most one record per scope key. The
// uniqueness decision itself lives in the store's atomic insert; the guard
// never pre-checks for existence.
type Guard struct {
	store    Store
	sessions SessionChecker
}

// NewGuard creates a feedback guard.
func NewGuard(store Store, sessions SessionChecker) *Guard {
	return &Guard{store: store, sessions: sessions}
}

// Submit validates and records one feedback submission for the author.
// Returns ErrValidation, ErrUnknownSession or ErrDuplicate as expected
// business outcomes; anything else is a store fault.
func (g *Guard) Submit(ctx context.Context, authorEmail string, in SubmitInput) (*models.Feedback, error) {
	if !models.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", ErrValidation)
	}

	// A sessionId on a non-session submission is dropped, not rejected; the
	// scope key for general categories never includes it.
	sessionID := ""
	if in.Category == models.CategorySession {
		if in.SessionID == "" {
			return nil, fmt.Errorf("%w: sessionId is required for session feedback", ErrValidation)
		}
		exists, err := g.sessions.Exists(ctx, in.SessionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownSession
		}
		sessionID = in.SessionID
	}

	f := &models.Feedback{
		Category:    in.Category,
		SessionID:   sessionID,
		AuthorEmail: strings.ToLower(authorEmail),
		Rating:      in.Rating,
		Comment:     in.Comment,
	}
	if err := g.store.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
