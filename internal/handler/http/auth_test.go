// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-microblog/internal/app"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// TestLogin_Success verifies that a successful login returns the session and
// mirrors the access token in the Authorization header.
func TestLogin_Success(t *testing.T) {
	h, m := newTestHandler(t)
	req := models.LoginRequest{Email: "alice@example.com", Password: "foobar", Remember: true}

	m.sessions.EXPECT().Login(gomock.Any(), req).
		Return(models.Session{User: alice, AccessToken: "access", RememberToken: "remember"}, nil)

	rec := serve(t, h, http.MethodPost, "/api/login", req, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer access", rec.Header().Get("Authorization"))
	session := decodeBody[models.Session](t, rec)
	assert.Equal(t, "remember", session.RememberToken)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgInvalidCredentials,
		},
		{
			name:       "not activated",
			err:        service.ErrNotActivated,
			wantStatus: http.StatusForbidden,
			wantMsg:    app.MsgAccountNotActivated,
		},
		{
			name:       "token creation failed",
			err:        service.ErrTokenCreationFailed,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.sessions.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Session{}, tt.err)

			rec := serve(t, h, http.MethodPost, "/api/login", models.LoginRequest{Email: "a@b.co", Password: "x"}, false)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[models.ErrorResponse](t, rec).Error)
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(t, h, http.MethodPost, "/api/login", "[]", false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRememberLogin(t *testing.T) {
	h, m := newTestHandler(t)
	req := models.RememberRequest{UserID: 1, RememberToken: "remember"}

	m.sessions.EXPECT().ResumeSession(gomock.Any(), req).Return(models.Session{User: alice, AccessToken: "fresh"}, nil)

	rec := serve(t, h, http.MethodPost, "/api/login/remember", req, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer fresh", rec.Header().Get("Authorization"))
}

func TestRememberLogin_Forgotten(t *testing.T) {
	h, m := newTestHandler(t)
	m.sessions.EXPECT().ResumeSession(gomock.Any(), gomock.Any()).Return(models.Session{}, service.ErrInvalidOrExpiredToken)

	rec := serve(t, h, http.MethodPost, "/api/login/remember", models.RememberRequest{UserID: 1, RememberToken: "old"}, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_ForgetsCaller(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAuth(aliceAuth)
	m.sessions.EXPECT().Forget(gomock.Any(), int64(1)).Return(nil)

	rec := serve(t, h, http.MethodDelete, "/api/logout", nil, true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
