package http

import (
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.login").Msg("invalid JSON was passed")
		return
	}

	session, err := h.services.SessionService.Login(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		writeError(w, err)
		return
	}

	log.Debug().Int64("user_id", session.User.ID).Bool("remember", req.Remember).Msg("user successfully logged in")
	writeSession(w, session, http.StatusOK)
}

// rememberLogin exchanges a remember token for a fresh access token.
func (h *Handler) rememberLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RememberRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.rememberLogin").Msg("invalid JSON was passed")
		return
	}

	session, err := h.services.SessionService.ResumeSession(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.rememberLogin").Int64("user_id", req.UserID).Msg("remembered login failed")
		writeError(w, err)
		return
	}

	writeSession(w, session, http.StatusOK)
}

// logout forgets the persistent session. Access tokens expire on their own.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err = h.services.SessionService.Forget(r.Context(), requester.UserID); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("logout failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
