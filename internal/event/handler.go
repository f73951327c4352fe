package event

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// UpdateRequest is the body for PUT /api/admin/event-settings.
type UpdateRequest struct {
	EventStartAt time.Time `json:"event_start_at" binding:"required"`
	EventName    string    `json:"event_name"`
}

// Handler handles event settings HTTP endpoints.
type Handler struct {
	store  SettingsStore
	logger *zap.Logger
}

// NewHandler creates an event settings handler.
func NewHandler(store SettingsStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Get handles GET /api/event/settings (any authenticated user) and
// GET /api/admin/event-settings (admin).
func (h *Handler) Get(c *gin.Context) {
	settings, err := h.store.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("get event settings failed", zap.Error(err))
		response.Internal(c, "failed to load event settings")
		return
	}
	response.OK(c, settings)
}

// Update handles PUT /api/admin/event-settings. Admin only; keeping the
// event name when the body omits it.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	name := req.EventName
	if name == "" {
		current, err := h.store.Get(c.Request.Context())
		if err != nil {
			h.logger.Error("get event settings failed", zap.Error(err))
			response.Internal(c, "failed to load event settings")
			return
		}
		name = current.EventName
	}

	settings, err := h.store.Update(c.Request.Context(), req.EventStartAt, name)
	if err != nil {
		h.logger.Error("update event settings failed", zap.Error(err))
		response.Internal(c, "failed to update event settings")
		return
	}
	response.OK(c, gin.H{"message": "event settings updated", "settings": settings})
}
