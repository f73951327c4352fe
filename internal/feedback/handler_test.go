package feedback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/internal/middleware"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

func newTestHandler(known ...string) (*Handler, *memStore) {
	guard, store := newTestGuard(known...)
	return NewHandler(guard, store, zap.NewNop()), store
}

func feedbackRouter(h *Handler, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserEmail, email)
		c.Next()
	})
	r.POST("/feedback", h.Submit)
	r.GET("/feedback/mine", h.Mine)
	return r
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitEndpoint(t *testing.T) {
	h, _ := newTestHandler("day1-keynote")
	router := feedbackRouter(h, "alice@example.com")

	rec := post(router, `{"category":"session","session_id":"day1-keynote","rating":5,"comment":"great"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(router, `{"category":"session","session_id":"day1-keynote","rating":4,"comment":"again"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already submitted for this session")
}

func TestSubmitEndpointUnknownSession(t *testing.T) {
	h, store := newTestHandler("day1-keynote")
	router := feedbackRouter(h, "alice@example.com")

	rec := post(router, `{"category":"session","session_id":"ghost","rating":5,"comment":"?"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.records)
}

func TestSubmitEndpointValidation(t *testing.T) {
	h, _ := newTestHandler()
	router := feedbackRouter(h, "alice@example.com")

	rec := post(router, `{"category":"food","rating":9,"comment":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func adminFeedbackRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/feedback/category/:category", h.ByCategory)
	r.GET("/admin/feedback/categories/stats", h.CategoryStats)
	return r
}

func TestByCategoryEndpoint(t *testing.T) {
	h, store := newTestHandler()
	seed := []models.Feedback{
		{Category: models.CategoryFood, AuthorEmail: "alice@example.com", Rating: 4, Comment: "good"},
		{Category: models.CategoryFood, AuthorEmail: "bob@example.com", Rating: 2, Comment: "cold"},
		{Category: models.CategoryOverall, AuthorEmail: "alice@example.com", Rating: 5, Comment: "great"},
	}
	for i := range seed {
		require.NoError(t, store.Create(context.Background(), &seed[i]))
	}
	router := adminFeedbackRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/feedback/category/food", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bob@example.com")
	assert.NotContains(t, rec.Body.String(), `"category":"overall"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/feedback/category/snacks", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryStatsEndpoint(t *testing.T) {
	h, store := newTestHandler()
	seed := []models.Feedback{
		{Category: models.CategoryFood, AuthorEmail: "alice@example.com", Rating: 4, Comment: "good"},
		{Category: models.CategoryFood, AuthorEmail: "bob@example.com", Rating: 2, Comment: "cold"},
		{Category: models.CategoryOverall, AuthorEmail: "alice@example.com", Rating: 5, Comment: "great"},
	}
	for i := range seed {
		require.NoError(t, store.Create(context.Background(), &seed[i]))
	}
	router := adminFeedbackRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/feedback/categories/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"food"`)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), `"average_rating":3`)
}

func TestMineEndpoint(t *testing.T) {
	h, _ := newTestHandler()
	router := feedbackRouter(h, "alice@example.com")

	rec := post(router, `{"category":"overall","rating":5,"comment":"good event"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/feedback/mine", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"overall"`)
}
