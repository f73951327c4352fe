package sessions

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// SessionRequest is the body for admin create/update of a session.
type SessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Speaker   string `json:"speaker" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Room      string `json:"room" binding:"required"`
	Track     string `json:"track" binding:"required"`
}

// Handler handles session catalog HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a sessions handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/sessions.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		response.Internal(c, "failed to list sessions")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/sessions/:sessionId.
func (h *Handler) Get(c *gin.Context) {
	s, err := h.repo.GetBySessionID(c.Request.Context(), c.Param("sessionId"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("get session failed", zap.Error(err))
		response.Internal(c, "failed to load session")
		return
	}
	response.OK(c, s)
}

// Create handles POST /api/admin/sessions.
func (h *Handler) Create(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	s := models.Session{
		SessionID: req.SessionID,
		Title:     req.Title,
		Speaker:   req.Speaker,
		Time:      req.Time,
		Room:      req.Room,
		Track:     req.Track,
	}
	err := h.repo.Create(c.Request.Context(), &s)
	if errors.Is(err, ErrSessionIDExists) {
		response.BadRequest(c, ErrSessionIDExists.Error())
		return
	}
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		response.Internal(c, "failed to create session")
		return
	}
	response.Created(c, gin.H{"message": "session created", "session": s})
}

// Update handles PUT /api/admin/sessions/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	s := models.Session{
		SessionID: req.SessionID,
		Title:     req.Title,
		Speaker:   req.Speaker,
		Time:      req.Time,
		Room:      req.Room,
		Track:     req.Track,
	}
	err = h.repo.Update(c.Request.Context(), id, &s)
	if errors.Is(err, ErrSessionIDExists) {
		response.BadRequest(c, ErrSessionIDExists.Error())
		return
	}
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("update session failed", zap.Error(err))
		response.Internal(c, "failed to update session")
		return
	}
	response.OK(c, gin.H{"message": "session updated", "session": s})
}

// Delete handles DELETE /api/admin/sessions/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return
	}
	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("delete session failed", zap.Error(err))
		response.Internal(c, "failed to delete session")
		return
	}
	response.OK(c, gin.H{"message": "session deleted"})
}

// Import handles POST /api/admin/sessions/import. Accepts a CSV upload and
// replaces the whole catalog.
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	list, err := ParseCSV(file)
	if err != nil {
		response.BadRequest(c, "csv parsing failed: "+err.Error())
		return
	}
	inserted, err := h.repo.ReplaceAll(c.Request.Context(), list)
	if err != nil {
		h.logger.Error("import sessions failed", zap.Error(err))
		response.Internal(c, "failed to import sessions")
		return
	}
	h.logger.Info("sessions imported", zap.Int("parsed", len(list)), zap.Int("inserted", inserted))
	response.OK(c, gin.H{"message": fmt.Sprintf("%d sessions uploaded successfully", inserted)})
}
