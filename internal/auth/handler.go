package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// LoginRequest is the body for POST /api/auth/login. Password is required
// for admin login only; attendees may send it empty.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(resolver *Resolver, logger *zap.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	identity, err := h.resolver.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrNotWhitelisted) {
		response.Unauthorized(c, ErrNotWhitelisted.Error())
		return
	}
	if err != nil {
		h.logger.Error("authenticate failed", zap.Error(err))
		response.Internal(c, "failed to authenticate")
		return
	}

	response.OK(c, identity)
}

// Me handles GET /api/auth/me. Returns the identity carried by the
// presented token.
func (h *Handler) Me(c *gin.Context) {
	response.OK(c, gin.H{
		"email": c.GetString("user_email"),
		"role":  c.GetString("user_role"),
		"name":  c.GetString("user_name"),
	})
}
