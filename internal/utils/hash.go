package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	digest := utils.HashString(rawToken, "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// EqualHashString reports whether digest is the HMAC-SHA256 of data under
// hashKey. The comparison runs in constant time.
func EqualHashString(data, digest, hashKey string) bool {
	decoded, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(hashString([]byte(data), hashKey), decoded)
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
