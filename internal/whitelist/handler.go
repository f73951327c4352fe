package whitelist

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// AttendeeRequest is the body for admin create/update of a whitelist entry.
type AttendeeRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required"`
	BookingID string `json:"booking_id" binding:"required"`
}

// Handler handles admin whitelist HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a whitelist handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/admin/attendees.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list attendees failed", zap.Error(err))
		response.Internal(c, "failed to list attendees")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/admin/attendees.
func (h *Handler) Create(c *gin.Context) {
	var req AttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	entry, err := h.repo.Create(c.Request.Context(), req.Email, req.Name, req.BookingID)
	if errors.Is(err, ErrEmailExists) {
		response.BadRequest(c, ErrEmailExists.Error())
		return
	}
	if err != nil {
		h.logger.Error("create attendee failed", zap.Error(err))
		response.Internal(c, "failed to create attendee")
		return
	}
	response.Created(c, entry)
}

// Update handles PUT /api/admin/attendees/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid attendee id")
		return
	}
	var req AttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	entry, err := h.repo.Update(c.Request.Context(), id, req.Email, req.Name, req.BookingID)
	if errors.Is(err, ErrEmailExists) {
		response.BadRequest(c, ErrEmailExists.Error())
		return
	}
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("update attendee failed", zap.Error(err))
		response.Internal(c, "failed to update attendee")
		return
	}
	response.OK(c, entry)
}

// Delete handles DELETE /api/admin/attendees/:id. Deleting an entry does not
// revoke tokens already issued for it.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid attendee id")
		return
	}
	err = h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.logger.Error("delete attendee failed", zap.Error(err))
		response.Internal(c, "failed to delete attendee")
		return
	}
	response.OK(c, gin.H{"message": "attendee deleted"})
}

// Import handles POST /api/admin/attendees/import. Accepts a CSV upload and
// replaces the whole whitelist.
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

	entries, err := ParseCSV(file)
	if err != nil {
		response.BadRequest(c, "csv parsing failed: "+err.Error())
		return
	}
	inserted, err := h.repo.ReplaceAll(c.Request.Context(), entries)
	if err != nil {
		h.logger.Error("import whitelist failed", zap.Error(err))
		response.Internal(c, "failed to import attendees")
		return
	}
	h.logger.Info("whitelist imported", zap.Int("parsed", len(entries)), zap.Int("inserted", inserted))
	response.OK(c, gin.H{"message": fmt.Sprintf("%d attendees uploaded successfully", inserted)})
}
