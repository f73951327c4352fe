package feedback

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

// memStore is an in-memory Store enforcing the same scope-key uniqueness the
// partial indexes do, with the check and insert under one lock.
type memStore struct {
	mu      sync.Mutex
	records []models.Feedback
}

func (m *memStore) scopeKey(f *models.Feedback) [3]string {
	if f.Category == models.CategorySession {
		return [3]string{string(f.Category), f.SessionID, f.AuthorEmail}
	}
	return [3]string{string(f.Category), "", f.AuthorEmail}
}

func (m *memStore) Create(_ context.Context, f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.scopeKey(f)
	for i := range m.records {
		if m.scopeKey(&m.records[i]) == key {
			return ErrDuplicate
		}
	}
	m.records = append(m.records, *f)
	return nil
}

func (m *memStore) ListByAuthor(_ context.Context, email string) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Feedback
	for _, f := range m.records {
		if f.AuthorEmail == email {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) ListBySession(_ context.Context, sessionID string) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Feedback
	for _, f := range m.records {
		if f.SessionID == sessionID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) ListByCategory(_ context.Context, category models.FeedbackCategory) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Feedback
	for _, f := range m.records {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) ListAll(context.Context) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Feedback(nil), m.records...), nil
}

func (m *memStore) CategoryStats(context.Context) ([]CategoryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byCategory := make(map[models.FeedbackCategory]*CategoryStat)
	var order []models.FeedbackCategory
	sums := make(map[models.FeedbackCategory]int)
	for _, f := range m.records {
		s, ok := byCategory[f.Category]
		if !ok {
			s = &CategoryStat{Category: f.Category}
			byCategory[f.Category] = s
			order = append(order, f.Category)
		}
		s.Count++
		sums[f.Category] += f.Rating
	}
	var stats []CategoryStat
	for _, c := range order {
		s := byCategory[c]
		s.AverageRating = float64(sums[c]) / float64(s.Count)
		stats = append(stats, *s)
	}
	return stats, nil
}

type memSessions struct {
	known map[string]bool
}

func (m *memSessions) Exists(_ context.Context, sessionID string) (bool, error) {
	return m.known[sessionID], nil
}

func newTestGuard(known ...string) (*Guard, *memStore) {
	sessions := &memSessions{known: make(map[string]bool)}
	for _, s := range known {
		sessions.known[s] = true
	}
	store := &memStore{}
	return NewGuard(store, sessions), store
}

func TestSubmitSessionFeedback(t *testing.T) {
	g, store := newTestGuard("day1-keynote")

	f, err := g.Submit(context.Background(), "Alice@Example.com", SubmitInput{
		Category:  models.CategorySession,
		SessionID: "day1-keynote",
		Rating:    5,
		Comment:   "great talk",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", f.AuthorEmail)
	assert.Equal(t, "day1-keynote", f.SessionID)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitDuplicateSessionFeedback(t *testing.T) {
	g, _ := newTestGuard("day1-keynote")

	in := SubmitInput{Category: models.CategorySession, SessionID: "day1-keynote", Rating: 4, Comment: "ok"}
	_, err := g.Submit(context.Background(), "alice@example.com", in)
	require.NoError(t, err)

	_, err = g.Submit(context.Background(), "alice@example.com", in)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSubmitSameCategoryDifferentSessions(t *testing.T) {
	g, store := newTestGuard("day1-keynote", "day1-workshop")

	for _, sid := range []string{"day1-keynote", "day1-workshop"} {
		_, err := g.Submit(context.Background(), "alice@example.com", SubmitInput{
			Category: models.CategorySession, SessionID: sid, Rating: 5, Comment: "nice",
		})
		require.NoError(t, err)
	}

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitGeneralCategoryOncePerAuthor(t *testing.T) {
	g, _ := newTestGuard()

	in := SubmitInput{Category: models.CategoryFood, Rating: 3, Comment: "decent"}
	_, err := g.Submit(context.Background(), "alice@example.com", in)
	require.NoError(t, err)

	_, err = g.Submit(context.Background(), "alice@example.com", in)
	assert.ErrorIs(t, err, ErrDuplicate)

	// A different attendee still gets their own slot.
	_, err = g.Submit(context.Background(), "bob@example.com", in)
	assert.NoError(t, err)
}

func TestSubmitGeneralCategoryIgnoresSessionID(t *testing.T) {
	g, _ := newTestGuard("day1-keynote")

	f, err := g.Submit(context.Background(), "alice@example.com", SubmitInput{
		Category: models.CategoryFood, SessionID: "day1-keynote", Rating: 3, Comment: "fine",
	})
	require.NoError(t, err)
	assert.Empty(t, f.SessionID)

	// The dropped field does not split the scope key: the next food
	// submission from the same author still conflicts.
	_, err = g.Submit(context.Background(), "alice@example.com", SubmitInput{
		Category: models.CategoryFood, Rating: 4, Comment: "fine",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSubmitUnknownSessionWritesNothing(t *testing.T) {
	g, store := newTestGuard("day1-keynote")

	_, err := g.Submit(context.Background(), "alice@example.com", SubmitInput{
		Category: models.CategorySession, SessionID: "no-such-session", Rating: 5, Comment: "?",
	})
	assert.ErrorIs(t, err, ErrUnknownSession)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitValidation(t *testing.T) {
	g, _ := newTestGuard("day1-keynote")
	ctx := context.Background()

	cases := []struct {
		name string
		in   SubmitInput
	}{
		{"unknown category", SubmitInput{Category: "snacks", Rating: 3, Comment: "x"}},
		{"rating too low", SubmitInput{Category: models.CategoryFood, Rating: 0, Comment: "x"}},
		{"rating too high", SubmitInput{Category: models.CategoryFood, Rating: 6, Comment: "x"}},
		{"blank comment", SubmitInput{Category: models.CategoryFood, Rating: 3, Comment: "   "}},
		{"session feedback without session", SubmitInput{Category: models.CategorySession, Rating: 3, Comment: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Submit(ctx, "alice@example.com", tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSubmitConcurrentDuplicates(t *testing.T) {
	g, store := newTestGuard("day1-keynote")

	const n = 32
	in := SubmitInput{Category: models.CategorySession, SessionID: "day1-keynote", Rating: 5, Comment: "race"}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.Submit(context.Background(), "alice@example.com", in)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrDuplicate):
			dup++
		}
	}
	assert.Equal(t, 1, ok, "exactly one submission wins")
	assert.Equal(t, n-1, dup)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
