package rbac_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-rbac"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	user := activeUser()

	ctx := rbac.WithUserContext(context.Background(), user)

	found, ok := rbac.UserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, user, found)

	_, ok = rbac.UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContext(t *testing.T) {
	claims := &rbac.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "tester@example.com",
	}

	ctx := rbac.WithClaimsContext(context.Background(), claims)

	found, ok := rbac.ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", found.UserID())
	assert.Equal(t, "tester@example.com", found.UserEmail())

	_, ok = rbac.ClaimsFromContext(context.Background())
	assert.False(t, ok)
}

func TestCan(t *testing.T) {
	user := activeUser(grantRole("editor", rbac.Require("posts", rbac.ActionUpdate)))
	ctx := rbac.WithUserContext(context.Background(), user)

	assert.True(t, rbac.Can(ctx, "posts", rbac.ActionUpdate))
	assert.False(t, rbac.Can(ctx, "posts", rbac.ActionDelete))

	t.Run("no user in context", func(t *testing.T) {
		assert.False(t, rbac.Can(context.Background(), "posts", rbac.ActionUpdate))
	})

	t.Run("inactive user", func(t *testing.T) {
		disabled := activeUser(grantRole("editor", rbac.Require("posts", rbac.ActionUpdate)))
		disabled.IsActive = false
		ctx := rbac.WithUserContext(context.Background(), disabled)
		assert.False(t, rbac.Can(ctx, "posts", rbac.ActionUpdate))
	})
}
