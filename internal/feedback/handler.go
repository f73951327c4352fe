package feedback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/internal/middleware"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// SubmitRequest is the body for POST /api/feedback.
type SubmitRequest struct {
	Category  string `json:"category" binding:"required"`
	SessionID string `json:"session_id"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// Handler handles feedback HTTP endpoints.
type Handler struct {
	guard  *Guard
	store  Store
	logger *zap.Logger
}

// NewHandler creates a feedback handler.
func NewHandler(guard *Guard, store Store, logger *zap.Logger) *Handler {
	return &Handler{guard: guard, store: store, logger: logger}
}

// Submit handles POST /api/feedback.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	email := c.GetString(middleware.ContextUserEmail)
	record, err := h.guard.Submit(c.Request.Context(), email, SubmitInput{
		Category:  models.FeedbackCategory(req.Category),
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrUnknownSession):
		response.NotFound(c, ErrUnknownSession.Error())
	case errors.Is(err, ErrDuplicate):
		response.BadRequest(c, duplicateMessage(models.FeedbackCategory(req.Category)))
	case err != nil:
		h.logger.Error("submit feedback failed", zap.Error(err))
		response.Internal(c, "failed to submit feedback")
	default:
		response.Created(c, gin.H{"message": "feedback submitted successfully", "feedback": record})
	}
}

// Mine handles GET /api/feedback/mine.
func (h *Handler) Mine(c *gin.Context) {
	email := c.GetString(middleware.ContextUserEmail)
	list, err := h.store.ListByAuthor(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("list feedback failed", zap.Error(err))
		response.Internal(c, "failed to list feedback")
		return
	}
	response.OK(c, list)
}

// Categories handles GET /api/feedback/categories.
func (h *Handler) Categories(c *gin.Context) {
	response.OK(c, []gin.H{
		{"id": models.CategoryOverall, "name": "Overall Experience", "description": "Rate your overall event experience"},
		{"id": models.CategorySession, "name": "Sessions", "description": "View and rate individual sessions"},
		{"id": models.CategoryFood, "name": "Food", "description": "Rate the food and catering"},
		{"id": models.CategoryTechBooths, "name": "Tech Booths", "description": "Rate the sponsor and tech booths"},
		{"id": models.CategoryVolunteer, "name": "Volunteers", "description": "Rate the volunteer support"},
		{"id": models.CategoryOther, "name": "Other", "description": "Anything else"},
	})
}

// BySession handles GET /api/admin/feedback/session/:sessionId.
func (h *Handler) BySession(c *gin.Context) {
	list, err := h.store.ListBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.logger.Error("list session feedback failed", zap.Error(err))
		response.Internal(c, "failed to list feedback")
		return
	}
	response.OK(c, list)
}

// ByCategory handles GET /api/admin/feedback/category/:category.
func (h *Handler) ByCategory(c *gin.Context) {
	category := models.FeedbackCategory(c.Param("category"))
	if !models.ValidCategory(category) {
		response.BadRequest(c, "unknown category")
		return
	}
	list, err := h.store.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("list category feedback failed", zap.Error(err))
		response.Internal(c, "failed to list feedback")
		return
	}
	response.OK(c, list)
}

// CategoryStats handles GET /api/admin/feedback/categories/stats.
func (h *Handler) CategoryStats(c *gin.Context) {
	stats, err := h.store.CategoryStats(c.Request.Context())
	if err != nil {
		h.logger.Error("category stats failed", zap.Error(err))
		response.Internal(c, "failed to load category stats")
		return
	}
	response.OK(c, stats)
}

// Export handles GET /api/admin/export/feedback. Streams all feedback as a
// CSV download.
func (h *Handler) Export(c *gin.Context) {
	list, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("export feedback failed", zap.Error(err))
		response.Internal(c, "failed to export feedback")
		return
	}

	filename := fmt.Sprintf("feedback-export-%s.csv", time.Now().UTC().Format("2006-01-02T15-04-05"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Category", "SessionID", "AuthorEmail", "Rating", "Comment", "CreatedAt"})
	for _, f := range list {
		_ = w.Write([]string{
			string(f.Category),
			f.SessionID,
			f.AuthorEmail,
			strconv.Itoa(f.Rating),
			f.Comment,
			f.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
}

func duplicateMessage(category models.FeedbackCategory) string {
	if category == models.CategorySession {
		return "feedback already submitted for this session"
	}
	return fmt.Sprintf("feedback already submitted for %s", category)
}
