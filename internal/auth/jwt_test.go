package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-community-vadodara/feedback-hub/internal/models"
)

func TestJWTGenerateValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 24)

	token, err := svc.Generate("alice@example.com", models.RoleAttendee, "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleAttendee, claims.Role)
	assert.Equal(t, "Alice", claims.Name)
}

func TestJWTAdminClaims(t *testing.T) {
	svc := NewJWTService("test-secret", 24)

	token, err := svc.Generate("admin@example.com", models.RoleAdmin, "")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Empty(t, claims.Name)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 24).Generate("alice@example.com", models.RoleAttendee, "Alice")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 24).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService("test-secret", 24)

	claims := Claims{
		Email: "alice@example.com",
		Role:  models.RoleAttendee,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 24)
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
