package rbac

import (
	"crypto/rand"
	"encoding/hex"
)

// verificationTokenBytes sets the entropy of verification tokens.
// 32 bytes hex-encoded yields a 64 character opaque token.
const verificationTokenBytes = 32

// NewVerificationToken mints an opaque, high-entropy, single-use token
// proving email ownership. Uniqueness is enforced by the store column.
func NewVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
