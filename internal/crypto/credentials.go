// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-microblog/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	// tokenBytes is the amount of entropy in a raw token (128 bits).
	tokenBytes = 16

	// DefaultResetTTL is the password reset expiry window.
	DefaultResetTTL = 2 * time.Hour
)

// credentialManager is the private implementation of [CredentialManager].
type credentialManager struct {
	passwordCost int
	digestKey    string
	resetTTL     time.Duration

	random io.Reader
	clock  func() time.Time
}

// Option customises a credential manager.
type Option func(*credentialManager)

// WithClock replaces the wall clock, used by tests to move time forward.
func WithClock(clock func() time.Time) Option {
	return func(m *credentialManager) {
		m.clock = clock
	}
}

// WithRandom replaces the random source used for token generation.
func WithRandom(r io.Reader) Option {
	return func(m *credentialManager) {
		m.random = r
	}
}

// NewCredentialManager constructs a [CredentialManager].
//
//   - passwordCost is the bcrypt cost; values outside bcrypt's range fall back to bcrypt.DefaultCost.
//   - digestKey is the HMAC key token digests are computed with.
//   - resetTTL is the reset window; zero means [DefaultResetTTL].
func NewCredentialManager(passwordCost int, digestKey string, resetTTL time.Duration, opts ...Option) CredentialManager {
	if passwordCost < bcrypt.MinCost || passwordCost > bcrypt.MaxCost {
		passwordCost = bcrypt.DefaultCost
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}

	m := &credentialManager{
		passwordCost: passwordCost,
		digestKey:    digestKey,
		resetTTL:     resetTTL,
		random:       rand.Reader,
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// HashPassword implements [CredentialManager].
func (m *credentialManager) HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), m.passwordCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(digest), nil
}

// VerifyPassword implements [CredentialManager].
func (m *credentialManager) VerifyPassword(digest, password string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// IssueToken implements [CredentialManager]. The raw token is tokenBytes
// of randomness encoded with unpadded URL-safe base64; the digest is the
// keyed HMAC-SHA256 of the raw token.
func (m *credentialManager) IssueToken() (string, string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(m.random, buf); err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}

	raw := base64.RawURLEncoding.EncodeToString(buf)
	return raw, m.digest(raw), nil
}

// VerifyToken implements [CredentialManager].
func (m *credentialManager) VerifyToken(raw string, digest *string) bool {
	if digest == nil || *digest == "" || raw == "" {
		return false
	}
	return utils.EqualHashString(raw, *digest, m.digestKey)
}

// ResetExpired implements [CredentialManager].
func (m *credentialManager) ResetExpired(sentAt *time.Time) bool {
	if sentAt == nil {
		return true
	}
	return m.Now().After(sentAt.Add(m.resetTTL))
}

// Now implements [CredentialManager]. Times are truncated to microseconds
// so they survive a round trip through every supported database.
func (m *credentialManager) Now() time.Time {
	return m.clock().UTC().Truncate(time.Microsecond)
}

func (m *credentialManager) digest(raw string) string {
	return utils.HashString(raw, m.digestKey)
}
