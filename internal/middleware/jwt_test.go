package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-community-vadodara/feedback-hub/internal/auth"
	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

func jwtRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": c.GetString(ContextUserEmail),
			"role":  c.GetString(ContextUserRole),
		})
	})
	return r
}

func TestJWTMiddlewareSetsClaims(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	token, err := svc.Generate("alice@example.com", models.RoleAttendee, "Alice")
	require.NoError(t, err)

	router := jwtRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.Contains(t, rec.Body.String(), "attendee")
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	router := jwtRouter(auth.NewJWTService("test-secret", 1))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	router := jwtRouter(auth.NewJWTService("test-secret", 1))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareTamperedToken(t *testing.T) {
	token, err := auth.NewJWTService("other-secret", 1).Generate("alice@example.com", models.RoleAttendee, "")
	require.NoError(t, err)

	router := jwtRouter(auth.NewJWTService("test-secret", 1))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) { c.Set(ContextUserRole, "attendee"); c.Next() },
		RequireRole("admin"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
