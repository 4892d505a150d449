package crypto

import "errors"

var (
	// ErrGeneratingToken is returned when the system random source fails.
	ErrGeneratingToken = errors.New("error generating random token")

	// ErrHashingPassword is returned when bcrypt rejects the password.
	ErrHashingPassword = errors.New("error hashing password")
)
