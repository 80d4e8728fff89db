package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-api/internal/models"
)

// Token lifetimes. Access tokens are deliberately short; refresh tokens carry
// remembered sessions; reset tokens cover a password-reset round trip.
const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
	ResetTokenTTL   = time.Hour
)

// ErrInvalidToken covers every verification failure that is not a parse
// error from the jwt library itself (wrong claims shape, failed type assert).
var ErrInvalidToken = errors.New("invalid token")

// Claims is what every token carries: subject id, email and role.
type Claims struct {
	UserID int64       `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token kinds. Each kind uses its
// own secret, so a token of one kind never verifies as another.
type TokenService struct {
	AccessSecret  []byte
	RefreshSecret []byte
	ResetSecret   []byte
	Issuer        string
}

func NewTokenService(accessSecret, refreshSecret, resetSecret, issuer string) *TokenService {
	return &TokenService{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		ResetSecret:   []byte(resetSecret),
		Issuer:        issuer,
	}
}

func (s *TokenService) IssueAccess(u *models.User) (string, error) {
	return s.issue(u, s.AccessSecret, AccessTokenTTL)
}

func (s *TokenService) IssueRefresh(u *models.User) (string, error) {
	return s.issue(u, s.RefreshSecret, RefreshTokenTTL)
}

func (s *TokenService) IssueReset(u *models.User) (string, error) {
	return s.issue(u, s.ResetSecret, ResetTokenTTL)
}

func (s *TokenService) ParseAccess(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.AccessSecret)
}

func (s *TokenService) ParseRefresh(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.RefreshSecret)
}

func (s *TokenService) ParseReset(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, s.ResetSecret)
}

func (s *TokenService) issue(u *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) parse(tokenStr string, secret []byte) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(s.Issuer))
	if err != nil {
		return nil, err // expired, bad signature, malformed
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
