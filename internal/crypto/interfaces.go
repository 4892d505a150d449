package crypto

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_manager_mock.go -package=mock

// CredentialManager owns every secret-handling primitive of the system.
// It knows nothing about storage, transport or accounts: it hashes and
// verifies passwords, issues opaque tokens and checks them against the
// digests that were persisted for them.
type CredentialManager interface {
	// HashPassword returns the bcrypt digest of password.
	HashPassword(password string) (string, error)

	// VerifyPassword reports whether password matches digest.
	VerifyPassword(digest, password string) bool

	// IssueToken generates a new opaque URL-safe token and its digest.
	// Only the digest may be persisted; raw is handed to the user once.
	IssueToken() (raw string, digest string, err error)

	// VerifyToken reports whether raw matches the stored digest.
	// An absent digest never verifies.
	VerifyToken(raw string, digest *string) bool

	// ResetExpired reports whether a reset requested at sentAt is past
	// the reset window. A missing timestamp counts as expired.
	ResetExpired(sentAt *time.Time) bool

	// Now returns the current time as seen by the manager, in UTC.
	Now() time.Time
}
