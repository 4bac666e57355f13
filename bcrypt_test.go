package rbac_test

import (
	"testing"

	"github.com/goliatone/go-rbac"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "securePassword123!",
			cost:     4,
			wantErr:  false,
		},
		{
			name:     "empty password",
			password: "",
			cost:     4,
			wantErr:  true,
		},
		{
			name:     "out of range cost falls back to default",
			password: "securePassword123!",
			cost:     -1,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := rbac.HashPassword(tt.password, tt.cost)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, rbac.ErrNoEmptyString)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			assert.NoError(t, rbac.ComparePasswordAndHash(tt.password, hash))
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := rbac.HashPassword(password, 4)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "invalid hash",
			password: password,
			hash:     "invalidhash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rbac.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.hash == hash {
					assert.Equal(t, rbac.ErrMismatchedHashAndPassword, err)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRandomPasswordHash(t *testing.T) {
	hash1 := rbac.RandomPasswordHash()
	hash2 := rbac.RandomPasswordHash()

	assert.NotEmpty(t, hash1)
	assert.NotEmpty(t, hash2)
	assert.NotEqual(t, hash1, hash2)
}

func TestNewVerificationToken(t *testing.T) {
	first, err := rbac.NewVerificationToken()
	assert.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := rbac.NewVerificationToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
