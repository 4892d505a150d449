package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestManager(opts ...Option) CredentialManager {
	return NewCredentialManager(bcrypt.MinCost, "digest-key", 2*time.Hour, opts...)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestHashPassword_VerifyPassword(t *testing.T) {
	m := newTestManager()

	digest, err := m.HashPassword("foobar")
	require.NoError(t, err)
	assert.NotEqual(t, "foobar", digest)

	assert.True(t, m.VerifyPassword(digest, "foobar"))
	assert.False(t, m.VerifyPassword(digest, "foobaz"))
	assert.False(t, m.VerifyPassword("", "foobar"))
	assert.False(t, m.VerifyPassword("not-a-bcrypt-digest", "foobar"))
}

func TestHashPassword_TooLong(t *testing.T) {
	m := newTestManager()

	_, err := m.HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrHashingPassword)
}

func TestNewCredentialManager_CostFallback(t *testing.T) {
	m := NewCredentialManager(100, "k", 0).(*credentialManager)
	assert.Equal(t, bcrypt.DefaultCost, m.passwordCost)
	assert.Equal(t, DefaultResetTTL, m.resetTTL)
}

func TestIssueToken(t *testing.T) {
	m := newTestManager()

	raw1, digest1, err := m.IssueToken()
	require.NoError(t, err)
	raw2, digest2, err := m.IssueToken()
	require.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
	assert.NotEqual(t, digest1, digest2)
	assert.NotEqual(t, raw1, digest1)

	decoded, err := base64.RawURLEncoding.DecodeString(raw1)
	require.NoError(t, err)
	assert.Len(t, decoded, tokenBytes)
	assert.NotContains(t, raw1, "+")
	assert.NotContains(t, raw1, "/")
	assert.NotContains(t, raw1, "=")
}

func TestIssueToken_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, tokenBytes)
	m := newTestManager(WithRandom(bytes.NewReader(seed)))

	raw, digest, err := m.IssueToken()
	require.NoError(t, err)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(seed), raw)
	assert.True(t, m.VerifyToken(raw, &digest))
}

func TestIssueToken_RandomFailure(t *testing.T) {
	m := newTestManager(WithRandom(failingReader{}))

	_, _, err := m.IssueToken()
	assert.ErrorIs(t, err, ErrGeneratingToken)
}

func TestVerifyToken(t *testing.T) {
	m := newTestManager()
	raw, digest, err := m.IssueToken()
	require.NoError(t, err)

	empty := ""
	other := NewCredentialManager(bcrypt.MinCost, "other-key", 0)

	assert.True(t, m.VerifyToken(raw, &digest), "matching token")
	assert.False(t, m.VerifyToken(raw+"x", &digest), "mismatching token")
	assert.False(t, m.VerifyToken(raw, nil), "absent digest")
	assert.False(t, m.VerifyToken(raw, &empty), "empty digest")
	assert.False(t, m.VerifyToken("", &digest), "empty raw")
	assert.False(t, other.VerifyToken(raw, &digest), "different digest key")
}

func TestResetExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(WithClock(func() time.Time { return now }))

	fresh := now.Add(-time.Hour)
	edge := now.Add(-2 * time.Hour)
	stale := now.Add(-3 * time.Hour)

	assert.False(t, m.ResetExpired(&fresh))
	assert.False(t, m.ResetExpired(&edge), "exactly at the window is still valid")
	assert.True(t, m.ResetExpired(&stale))
	assert.True(t, m.ResetExpired(nil))
}

func TestNow_UTCMicroseconds(t *testing.T) {
	local := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))
	m := newTestManager(WithClock(func() time.Time { return local }))

	now := m.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, 123456000, now.Nanosecond())
	assert.True(t, now.Equal(local.Truncate(time.Microsecond)))
}
