package rbac

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents the validated contents of a bearer token
type AuthClaims interface {
	Subject() string
	UserID() string
	UserEmail() string
	UserUsername() string
	Expires() time.Time
	TokenIssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The wire format
// carries sub, email, username, and the registered timestamps.
type JWTClaims struct {
	jwt.RegisteredClaims
	Email    string         `json:"email,omitempty"`
	Username string         `json:"username,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"` // extension payload
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the principal id carried in the subject claim
func (c *JWTClaims) UserID() string {
	return c.Subject()
}

// UserEmail returns the email claim
func (c *JWTClaims) UserEmail() string {
	return c.Email
}

// UserUsername returns the username claim
func (c *JWTClaims) UserUsername() string {
	return c.Username
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// TokenIssuedAt returns the issued at time
func (c *JWTClaims) TokenIssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
