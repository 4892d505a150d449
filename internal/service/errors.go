package service

import "errors"

// Error kinds returned by the services. Validation and duplicate constraint
// failures are reported as validators.ValidationErrors instead.
var (
	// ErrInvalidCredentials is returned by login for an unknown email or a
	// wrong password. The two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email/password combination")

	// ErrNotActivated is returned by login when the password is correct but
	// the account has not been activated yet.
	ErrNotActivated = errors.New("account not activated")

	// ErrInvalidOrExpiredToken is returned when an activation, reset or
	// remember token does not match, was already consumed or expired.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrUnauthorized is returned when a request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the identity may not act on the target account.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the target account does not exist or is hidden.
	ErrNotFound = errors.New("not found")
)

var (
	ErrTokenCreationFailed     = errors.New("failed to create access token")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrInvalidDataProvided     = errors.New("invalid data provided")
)
