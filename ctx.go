package rbac

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithUserContext sets the User in the given context
func WithUserContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext finds the user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(ctx context.Context, claims AuthClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the AuthClaims from the context
func ClaimsFromContext(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// Can is a convenience check for the principal stored in the context. It
// evaluates the user's loaded roles against a single requirement.
func Can(ctx context.Context, resource string, action Action) bool {
	user, ok := UserFromContext(ctx)
	if !ok || user == nil || !user.IsActive {
		return false
	}
	return Evaluate(user.Roles, []Requirement{Require(resource, action)})
}
