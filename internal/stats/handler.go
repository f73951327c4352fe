package stats

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// Counter reports the size of one collection. Implemented by the sessions,
// feedback and whitelist repositories.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Handler serves the admin dashboard counters.
type Handler struct {
	sessions  Counter
	feedback  Counter
	attendees Counter
	logger    *zap.Logger
}

// NewHandler creates a stats handler.
func NewHandler(sessions, feedback, attendees Counter, logger *zap.Logger) *Handler {
	return &Handler{sessions: sessions, feedback: feedback, attendees: attendees, logger: logger}
}

// Get handles GET /api/admin/stats.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	totalSessions, err := h.sessions.Count(ctx)
	if err != nil {
		h.logger.Error("count sessions failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	totalFeedback, err := h.feedback.Count(ctx)
	if err != nil {
		h.logger.Error("count feedback failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	totalAttendees, err := h.attendees.Count(ctx)
	if err != nil {
		h.logger.Error("count attendees failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}

	response.OK(c, gin.H{
		"total_sessions":  totalSessions,
		"total_feedback":  totalFeedback,
		"total_attendees": totalAttendees,
	})
}
