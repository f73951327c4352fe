package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// StartGate reports whether the event has started. Implemented by
// event.Clock.
type StartGate interface {
	HasStarted(ctx context.Context, now time.Time) (bool, error)
}

// RequireEventStarted returns a middleware that rejects requests until the
// event start instant has passed. Applied to the feedback and job portal
// submission surfaces; data-integrity checks remain with the stores.
func RequireEventStarted(gate StartGate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started, err := gate.HasStarted(c.Request.Context(), time.Now())
		if err != nil {
			logger.Error("event gate check failed", zap.Error(err))
			response.Internal(c, "failed to check event status")
			c.Abort()
			return
		}
		if !started {
			response.Forbidden(c, "event has not started yet")
			c.Abort()
			return
		}
		c.Next()
	}
}
