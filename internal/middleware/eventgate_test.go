package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeGate struct {
	started bool
	err     error
}

func (f *fakeGate) HasStarted(context.Context, time.Time) (bool, error) {
	return f.started, f.err
}

func gateRouter(gate StartGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/feedback", RequireEventStarted(gate, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRequireEventStartedBlocksBeforeStart(t *testing.T) {
	router := gateRouter(&fakeGate{started: false})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "event has not started yet")
}

func TestRequireEventStartedPassesAfterStart(t *testing.T) {
	router := gateRouter(&fakeGate{started: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireEventStartedStoreError(t *testing.T) {
	router := gateRouter(&fakeGate{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
