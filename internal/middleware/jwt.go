package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aws-community-vadodara/feedback-hub/internal/auth"
	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

const (
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserName is the key for user display name in gin context.
	ContextUserName = "user_name"
)

// JWT returns a middleware that validates the bearer token and sets the
// identity claims in context. Any tampering or expiry rejects the request.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, string(claims.Role))
		c.Set(ContextUserName, claims.Name)
		c.Next()
	}
}
