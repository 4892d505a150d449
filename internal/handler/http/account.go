package http

import (
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
)

// activateAccount consumes an activation token and logs the account in.
func (h *Handler) activateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ActivationRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.activateAccount").Msg("invalid JSON was passed")
		return
	}

	user, err := h.services.UserService.ActivateWithToken(ctx, req.UserID, req.Token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.activateAccount").Int64("user_id", req.UserID).Msg("activation failed")
		writeError(w, err)
		return
	}

	h.startSession(w, r, user, "*Handler.activateAccount")
}

// requestPasswordReset issues a reset token and hands it to the mailer.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.requestPasswordReset").Msg("invalid JSON was passed")
		return
	}

	user, resetToken, err := h.services.UserService.RequestReset(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("func", "*Handler.requestPasswordReset").Msg("password reset request failed")
		writeError(w, err)
		return
	}

	if err = h.mailer.SendPasswordReset(ctx, user, resetToken); err != nil {
		log.Err(err).Str("func", "*Handler.requestPasswordReset").Int64("user_id", user.ID).Msg("reset mail was not sent")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// resetPassword consumes a reset token, sets the new password and logs the
// account in.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetConsumeRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.resetPassword").Msg("invalid JSON was passed")
		return
	}

	user, err := h.services.UserService.ConsumeReset(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resetPassword").Int64("user_id", req.UserID).Msg("password reset failed")
		writeError(w, err)
		return
	}

	h.startSession(w, r, user, "*Handler.resetPassword")
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.User, funcName string) {
	token, err := h.services.SessionService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Int64("user_id", user.ID).Msg("creation of token failed")
		writeError(w, err)
		return
	}

	writeSession(w, models.Session{User: user, AccessToken: token.SignedString}, http.StatusOK)
}
