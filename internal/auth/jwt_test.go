package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/models"
)

func newTestService() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", "reset-secret", "storefront-test")
}

func testUser() *models.User {
	return &models.User{ID: 42, Email: "jane@example.com", Role: models.RoleAdmin}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccess(testUser())
	require.NoError(t, err)

	claims, err := svc.ParseAccess(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "storefront-test", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestRefreshTokenLifetime(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueRefresh(testUser())
	require.NoError(t, err)

	claims, err := svc.ParseRefresh(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

// Each token kind must only verify against its own secret: a refresh token
// presented where an access token is expected has to fail.
func TestTokenKindsDoNotCrossVerify(t *testing.T) {
	svc := newTestService()
	u := testUser()

	refresh, err := svc.IssueRefresh(u)
	require.NoError(t, err)
	reset, err := svc.IssueReset(u)
	require.NoError(t, err)

	_, err = svc.ParseAccess(refresh)
	assert.Error(t, err)
	_, err = svc.ParseAccess(reset)
	assert.Error(t, err)
	_, err = svc.ParseRefresh(reset)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := newTestService()

	claims := Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.AccessSecret)
	require.NoError(t, err)

	_, err = svc.ParseAccess(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccess(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ParseAccess(tampered)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	other := NewTokenService("access-secret", "refresh-secret", "reset-secret", "someone-else")

	token, err := other.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = newTestService().ParseAccess(token)
	assert.Error(t, err)
}
