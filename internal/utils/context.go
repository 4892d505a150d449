// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for carrying the request identity in a context,
// keyed hashing, HTTP response writing, and access token generation
// and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-microblog/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authenticated [models.Identity]
// of the current request is stored.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the request identity from the context.
//
// ok is false when no identity was stored or the stored identity has no
// user id.
//
// Example usage:
//
//	identity, ok := utils.GetIdentityFromContext(ctx)
//	if !ok {
//	    // request is not authenticated
//	}
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || identity.UserID == 0 {
		return models.Identity{}, false
	}
	return identity, true
}
