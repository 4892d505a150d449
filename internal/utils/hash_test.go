// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString_MatchesHMAC(t *testing.T) {
	key := "secret-key"
	data := "raw-token"

	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, expected, HashString(data, key))
	assert.Equal(t, HashString(data, key), HashString(data, key), "hash must be deterministic")
}

func TestHashString_KeyMatters(t *testing.T) {
	assert.NotEqual(t, HashString("data", "k1"), HashString("data", "k2"))
}

func TestEqualHashString(t *testing.T) {
	digest := HashString("token", "key")

	tests := []struct {
		name   string
		data   string
		digest string
		key    string
		want   bool
	}{
		{name: "match", data: "token", digest: digest, key: "key", want: true},
		{name: "wrong data", data: "other", digest: digest, key: "key"},
		{name: "wrong key", data: "token", digest: digest, key: "other"},
		{name: "not hex", data: "token", digest: "zz", key: "key"},
		{name: "empty digest", data: "token", digest: "", key: "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualHashString(tt.data, tt.digest, tt.key))
		})
	}
}
