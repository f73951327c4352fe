package feedback

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// ErrDuplicate is returned when feedback for the same scope key already
// exists. An expected outcome the caller renders as "already submitted",
// not a server fault.
var ErrDuplicate = errors.New("feedback already submitted")

// CategoryStat is a per-category aggregate for the admin dashboard.
type CategoryStat struct {
	Category      models.FeedbackCategory `json:"category"`
	Count         int                     `json:"count"`
	AverageRating float64                 `json:"average_rating"`
}

// Store persists feedback records. Create must check the scope key and
// insert as one atomic unit; a read-then-write pair would admit duplicates
// under concurrent identical submissions.
type Store interface {
	Create(ctx context.Context, f *models.Feedback) error
	ListByAuthor(ctx context.Context, email string) ([]models.Feedback, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Feedback, error)
	ListByCategory(ctx context.Context, category models.FeedbackCategory) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	CategoryStats(ctx context.Context) ([]CategoryStat, error)
}

// Repository is the PostgreSQL Store. Uniqueness rides on two partial
// unique indexes: (category, session_id, author_email) for session feedback
// and (category, author_email) for everything else.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a feedback repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create atomically inserts the record iff its scope key is unoccupied.
// ON CONFLICT DO NOTHING returns no row on a conflict with either partial
// index, which surfaces as ErrDuplicate.
func (r *Repository) Create(ctx context.Context, f *models.Feedback) error {
	const q = `INSERT INTO feedback (category, session_id, author_email, rating, comment)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, f.Category, f.SessionID, f.AuthorEmail, f.Rating, f.Comment).
		Scan(&f.ID, &f.CreatedAt)
	if err == pgx.ErrNoRows {
		return ErrDuplicate
	}
	return err
}

// ListByAuthor returns all feedback submitted by one attendee.
func (r *Repository) ListByAuthor(ctx context.Context, email string) ([]models.Feedback, error) {
	const q = `SELECT id, category, COALESCE(session_id, ''), author_email, rating, comment, created_at
		FROM feedback WHERE author_email = $1 ORDER BY created_at DESC`
	return r.query(ctx, q, email)
}

// ListBySession returns all feedback for one session.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]models.Feedback, error) {
	const q = `SELECT id, category, COALESCE(session_id, ''), author_email, rating, comment, created_at
		FROM feedback WHERE session_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, q, sessionID)
}

// ListByCategory returns all feedback in one category.
func (r *Repository) ListByCategory(ctx context.Context, category models.FeedbackCategory) ([]models.Feedback, error) {
	const q = `SELECT id, category, COALESCE(session_id, ''), author_email, rating, comment, created_at
		FROM feedback WHERE category = $1 ORDER BY created_at DESC`
	return r.query(ctx, q, category)
}

// ListAll returns every feedback record, oldest first, for export.
func (r *Repository) ListAll(ctx context.Context) ([]models.Feedback, error) {
	const q = `SELECT id, category, COALESCE(session_id, ''), author_email, rating, comment, created_at
		FROM feedback ORDER BY created_at`
	return r.query(ctx, q)
}

// Count returns the number of feedback records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&n)
	return n, err
}

// CategoryStats returns count and average rating per category. Categories
// with no feedback yet are simply absent.
func (r *Repository) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := r.pool.Query(ctx, `SELECT category, COUNT(*), AVG(rating)::float8
		FROM feedback GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stats []CategoryStat
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.AverageRating); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]models.Feedback, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Category, &f.SessionID, &f.AuthorEmail, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
