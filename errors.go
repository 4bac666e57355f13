package rbac

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	TextCodeEmailExists         = "EMAIL_EXISTS"
	TextCodeUsernameExists      = "USERNAME_EXISTS"
	TextCodeNameExists          = "NAME_EXISTS"
	TextCodeAlreadyVerified     = "EMAIL_ALREADY_VERIFIED"
	TextCodeInvalidVerification = "INVALID_VERIFICATION_TOKEN"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodePermissionDenied    = "PERMISSION_DENIED"
	TextCodeUserInactive        = "USER_INACTIVE"
	TextCodeEmptyPassword       = "EMPTY_PASSWORD"
	TextCodeInvalidAction       = "INVALID_ACTION"
	TextCodeDeliveryFailed      = "NOTIFICATION_DELIVERY_FAILED"
	TextCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
)

// ErrInvalidCredentials is the uniform sign-in failure. Missing user,
// missing password hash, and hash mismatch all collapse into it so a
// caller cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrEmailExists is returned when a signup or update collides with an
// existing email.
var ErrEmailExists = goerrors.New("user with this email already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailExists).
	WithCode(goerrors.CodeConflict)

// ErrUsernameExists is returned when a username is already taken.
var ErrUsernameExists = goerrors.New("user with this username already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUsernameExists).
	WithCode(goerrors.CodeConflict)

// ErrNameExists is returned when a role, permission, or resource name is
// already taken.
var ErrNameExists = goerrors.New("name already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeNameExists).
	WithCode(goerrors.CodeConflict)

// ErrAlreadyVerified is returned when resending verification for an
// address that is verified already.
var ErrAlreadyVerified = goerrors.New("email already verified", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyVerified).
	WithCode(goerrors.CodeConflict)

// ErrInvalidVerificationToken is returned when no user holds the given
// verification token. Deliberately indistinguishable from a used token.
var ErrInvalidVerificationToken = goerrors.New("invalid verification token", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidVerification).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned for bearer tokens past their expiration.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for bearer tokens that fail to parse or
// carry an invalid signature.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrPermissionDenied is returned when an authenticated principal lacks a
// required permission.
var ErrPermissionDenied = goerrors.New("you do not have permission to perform this action", goerrors.CategoryAuthz).
	WithTextCode(TextCodePermissionDenied).
	WithCode(goerrors.CodeForbidden)

// ErrUserInactive is returned when the principal exists but is disabled.
var ErrUserInactive = goerrors.New("user is not active", goerrors.CategoryAuth).
	WithTextCode(TextCodeUserInactive).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword mirrors bcrypt's mismatch without leaking
// bcrypt internals to callers.
var ErrMismatchedHashAndPassword = goerrors.New("hashed password is not the hash of the given password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidAction is returned when a permission carries an action outside
// the closed set.
var ErrInvalidAction = goerrors.New("unknown permission action", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidAction).
	WithCode(goerrors.CodeBadRequest)

// ErrDeliveryFailed is the sentinel Notifier implementations should wrap
// when delivery fails.
var ErrDeliveryFailed = goerrors.New("notification delivery failed", goerrors.CategoryOperation).
	WithTextCode(TextCodeDeliveryFailed)

// ErrAccountNotFound is returned when a verification resend targets an
// email that has no account.
var ErrAccountNotFound = goerrors.New("no account found for this email", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInUse is returned when a freshly minted verification token
// collides with an existing one. With 256 bits of entropy this signals a
// broken random source, not bad luck.
var ErrTokenInUse = goerrors.New("verification token already in use", goerrors.CategoryConflict).
	WithTextCode(TextCodeInvalidVerification).
	WithCode(goerrors.CodeConflict)

// IsConflict reports whether err is an already-exists condition.
func IsConflict(err error) bool {
	return hasCategory(err, goerrors.CategoryConflict)
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return hasCategory(err, goerrors.CategoryAuth)
}

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool {
	return hasCategory(err, goerrors.CategoryAuthz)
}

// IsValidation reports whether err is a malformed-input failure.
func IsValidation(err error) bool {
	return hasCategory(err, goerrors.CategoryValidation) ||
		hasCategory(err, goerrors.CategoryBadInput)
}

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool {
	return goerrors.IsNotFound(err) || hasCategory(err, goerrors.CategoryNotFound)
}

func hasCategory(err error, category goerrors.Category) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == category
	}
	return false
}

// translateUniqueViolation maps storage-engine unique constraint errors
// onto the conflict sentinels so workflows never depend on driver codes.
// Covers postgres (23505), mysql (1062), and sqlite message formats.
func translateUniqueViolation(err error, conflict *goerrors.Error) error {
	if err == nil {
		return nil
	}

	if !isUniqueViolation(err) {
		return err
	}

	return conflict
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "Error 1062") ||
		strings.Contains(msg, "Duplicate entry")
}

// uniqueViolationColumn sniffs the offending column so the store can pick
// the right conflict sentinel. Empty when the driver message has no hint.
func uniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())
	for _, column := range []string{"verification_token", "username", "email", "name"} {
		if strings.Contains(msg, column) {
			return column
		}
	}
	return ""
}
