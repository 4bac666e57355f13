package rbac_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-rbac"
	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		conflict     bool
		unauthorized bool
		forbidden    bool
		validation   bool
		notFound     bool
	}{
		{name: "invalid credentials", err: rbac.ErrInvalidCredentials, unauthorized: true},
		{name: "email exists", err: rbac.ErrEmailExists, conflict: true},
		{name: "username exists", err: rbac.ErrUsernameExists, conflict: true},
		{name: "name exists", err: rbac.ErrNameExists, conflict: true},
		{name: "already verified", err: rbac.ErrAlreadyVerified, conflict: true},
		{name: "invalid verification token", err: rbac.ErrInvalidVerificationToken, unauthorized: true},
		{name: "token expired", err: rbac.ErrTokenExpired, unauthorized: true},
		{name: "token malformed", err: rbac.ErrTokenMalformed, unauthorized: true},
		{name: "permission denied", err: rbac.ErrPermissionDenied, forbidden: true},
		{name: "user inactive", err: rbac.ErrUserInactive, unauthorized: true},
		{name: "empty password", err: rbac.ErrNoEmptyString, validation: true},
		{name: "invalid action", err: rbac.ErrInvalidAction, validation: true},
		{name: "account not found", err: rbac.ErrAccountNotFound, unauthorized: true},
		{name: "plain error matches nothing", err: errors.New("boom")},
		{name: "nil matches nothing", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, rbac.IsConflict(tt.err), "IsConflict")
			assert.Equal(t, tt.unauthorized, rbac.IsUnauthorized(tt.err), "IsUnauthorized")
			assert.Equal(t, tt.forbidden, rbac.IsForbidden(tt.err), "IsForbidden")
			assert.Equal(t, tt.validation, rbac.IsValidation(tt.err), "IsValidation")
			assert.Equal(t, tt.notFound, rbac.IsNotFound(tt.err), "IsNotFound")
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := goerrors.Wrap(rbac.ErrEmailExists, goerrors.CategoryConflict, "signup failed")
	assert.True(t, rbac.IsConflict(wrapped))
}

func TestSentinelTextCodes(t *testing.T) {
	var richErr *goerrors.Error
	assert.True(t, goerrors.As(rbac.ErrPermissionDenied, &richErr))
	assert.Equal(t, rbac.TextCodePermissionDenied, richErr.TextCode)

	assert.True(t, goerrors.As(rbac.ErrEmailExists, &richErr))
	assert.Equal(t, rbac.TextCodeEmailExists, richErr.TextCode)
}
