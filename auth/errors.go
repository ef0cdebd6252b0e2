package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeInvalidRefresh      = "INVALID_REFRESH"
	TextCodeNoRefreshCredential = "NO_REFRESH_CREDENTIAL"
	TextCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	TextCodeUsernameTaken       = "USERNAME_TAKEN"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
	TextCodeEmptyPassword       = "EMPTY_PASSWORD"
	TextCodeUserNotFound        = "USER_NOT_FOUND"
)

// ErrMismatchedHashAndPassword is returned when a password does not verify
// against the stored hash. Lookup misses fold into the same value so login
// failures are indistinguishable to the caller.
var ErrMismatchedHashAndPassword = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidRefresh is returned for any refresh credential failure. The
// message is intentionally generic.
var ErrInvalidRefresh = errors.New("Invalid refresh token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidRefresh).
	WithCode(errors.CodeUnauthorized)

// ErrNoRefreshCredential is returned when the refresh cookie is absent.
var ErrNoRefreshCredential = errors.New("No refresh token provided", errors.CategoryAuth).
	WithTextCode(TextCodeNoRefreshCredential).
	WithCode(errors.CodeUnauthorized)

// ErrEmailTaken is returned when registering with an email already present.
var ErrEmailTaken = errors.New("Email already in use", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrUsernameTaken is returned when a profile update collides on username.
var ErrUsernameTaken = errors.New("Username already taken", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrTokenExpired is returned when a credential verifies but is past expiry.
var ErrTokenExpired = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a credential cannot be parsed or its
// signature does not verify.
var ErrTokenMalformed = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUserNotFound is returned when a user lookup comes back empty.
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before they reach the hasher.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)
