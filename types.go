package rbac

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated principal
type Identity interface {
	ID() string
	Username() string
	Email() string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetFrontendURL() string
	GetBcryptCost() int
}

// TokenService handles bearer token generation and validation
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(token string) (AuthClaims, error)
}

// Notifier is the delivery boundary for outbound notifications. The
// workflow never inspects rendered content, only the outcome.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}

// Authorizer decides whether a principal may execute a named operation
type Authorizer interface {
	Authorize(user *User, operation string) error
	RequireAll(user *User, required ...Requirement) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] RBAC "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] RBAC "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] RBAC "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] RBAC "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// SimpleConfig is a plain Config implementation for callers that do not
// bring their own configuration layer.
type SimpleConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	FrontendURL     string
	BcryptCost      int
}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return int(DefaultTokenExpiration / time.Hour)
	}
	return c.TokenExpiration
}

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetAudience() []string { return c.Audience }

func (c SimpleConfig) GetFrontendURL() string {
	if c.FrontendURL == "" {
		return "http://localhost:3000"
	}
	return c.FrontendURL
}

func (c SimpleConfig) GetBcryptCost() int { return c.BcryptCost }

// DefaultTokenExpiration is the bearer token lifetime used when the
// configuration does not set one.
var DefaultTokenExpiration = 24 * time.Hour
