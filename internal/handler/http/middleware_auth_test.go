// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-microblog/internal/app"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lower-case scheme", header: "bearer abc", wantToken: "abc"},
		{name: "empty header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "no token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "blank token", header: "Bearer   ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuth_StoresIdentityInContext(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(models.Identity{UserID: 42, Admin: true})

	var got models.Identity
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("Authorization", "Bearer "+testAccessToken)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, models.Identity{UserID: 42, Admin: true}, got)
}

func TestAuth_InvalidToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.sessions.EXPECT().ParseToken(gomock.Any(), "forged").
		Return(models.Token{}, errors.Join(service.ErrTokenIsExpiredOrInvalid, errors.New("signature is invalid")))

	nextCalled := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextCalled = true })

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.False(t, nextCalled)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, decodeBody[models.ErrorResponse](t, rec).Error)
}

func TestAuth_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	})

	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feed", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgUnauthorized, decodeBody[models.ErrorResponse](t, rec).Error)
}
