package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the JWT claim set of an access token.
// The subject carries the user id; Admin mirrors the account flag at
// issuance time.
type AccessClaims struct {
	jwt.RegisteredClaims

	Admin bool `json:"adm,omitempty"`
}

// Token wraps a signed access token together with the identity it carries.
type Token struct {
	// Claims is the decoded claim set.
	Claims AccessClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim.
//
// Returns an error if the subject claim is missing or is not a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Identity returns the request identity carried by the token.
func (t *Token) Identity() Identity {
	return Identity{UserID: t.UserID, Admin: t.Claims.Admin}
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
