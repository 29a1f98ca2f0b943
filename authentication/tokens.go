package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Gin context keys set by the auth middlewares.
const (
	AdminIDKey      = "admin_id"
	CenterIDKey     = "center_id"
	PatientPhoneKey = "patient_phone"
	claimsKey       = "token_claims"
)

var (
	ErrMissingToken = errors.New("missing the authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Revocations remembers logged-out token ids until they expire.
type Revocations interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

type Secrets struct {
	Admin   string
	Clinic  string
	Patient string
}

// TokenManager signs and verifies the admin, clinic and patient tokens.
type TokenManager struct {
	secrets Secrets
	ttl     time.Duration
	revoked Revocations
	now     func() time.Time
}

func NewTokenManager(secrets Secrets, ttl time.Duration, revoked Revocations) *TokenManager {
	return &TokenManager{secrets: secrets, ttl: ttl, revoked: revoked, now: time.Now}
}

func (m *TokenManager) registered(subject string) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
}

func sign(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parse verifies tokenString into claims and checks it was not revoked.
// registered must point at the RegisteredClaims embedded in claims.
func (m *TokenManager) parse(ctx context.Context, tokenString string, claims jwt.Claims, registered *jwt.RegisteredClaims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	if registered.ID == "" {
		return ErrInvalidToken
	}
	_, revoked, err := m.revoked.Get(ctx, revokedKey(registered.ID))
	if err != nil {
		return fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return ErrRevokedToken
	}
	return nil
}

// Revoke blocks the token of the current request until it would have expired.
func (m *TokenManager) Revoke(c *gin.Context) error {
	claims, ok := c.Get(claimsKey)
	if !ok {
		return ErrMissingToken
	}
	rc := claims.(*jwt.RegisteredClaims)
	if rc.ExpiresAt == nil {
		return ErrInvalidToken
	}

	ttl := rc.ExpiresAt.Time.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revoked.Set(c.Request.Context(), revokedKey(rc.ID), "1", ttl)
}

func revokedKey(id string) string {
	return "jwt:revoked:" + id
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// authenticate runs parse for the request token and aborts with 401 on failure.
func (m *TokenManager) authenticate(c *gin.Context, claims jwt.Claims, registered *jwt.RegisteredClaims, secret string) bool {
	tokenString, err := bearer(c)
	if err == nil {
		err = m.parse(c.Request.Context(), tokenString, claims, registered, secret)
	}
	switch {
	case err == nil:
		c.Set(claimsKey, registered)
		return true
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrRevokedToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Could not verify the token, try again later"})
	}
	return false
}
