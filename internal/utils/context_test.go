package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
)

func TestGetIdentityFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   models.Identity
		wantOK bool
	}{
		{
			name:   "stored identity",
			ctx:    WithIdentity(context.Background(), models.Identity{UserID: 7, Admin: true}),
			want:   models.Identity{UserID: 7, Admin: true},
			wantOK: true,
		},
		{
			name: "missing identity",
			ctx:  context.Background(),
		},
		{
			name: "zero user id",
			ctx:  WithIdentity(context.Background(), models.Identity{}),
		},
		{
			name: "wrong type under key",
			ctx:  context.WithValue(context.Background(), IdentityCtxKey, int64(7)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetIdentityFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "identity", IdentityCtxKey.String())
}
