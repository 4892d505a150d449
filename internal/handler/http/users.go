package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
)

// createUser registers an unactivated account and hands the activation
// token to the mailer. A mail failure does not fail the signup.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.createUser").Msg("invalid JSON was passed")
		return
	}

	user, activationToken, err := h.services.UserService.Create(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createUser").Msg("account creation failed")
		writeError(w, err)
		return
	}

	activationSent := true
	if err = h.mailer.SendActivation(ctx, user, activationToken); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.createUser").Int64("user_id", user.ID).Msg("activation mail was not sent")
		activationSent = false
	}

	utils.WriteJSON(w, models.SignupResponse{User: user, ActivationSent: activationSent}, http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Send()
		writeError(w, err)
		return
	}

	users, err := h.services.UserService.ListActivated(r.Context(), page)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listUsers").Msg("error listing users")
		writeError(w, err)
		return
	}
	visible := make([]models.User, 0, len(users))
	for _, u := range users {
		visible = append(visible, u.VisibleTo(requester))
	}

	utils.WriteJSON(w, models.UsersResponse{Users: visible, Page: page}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.services.UserService.Profile(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getUser").Int64("id", id).Msg("error getting profile")
		writeError(w, err)
		return
	}
	profile.User = profile.User.VisibleTo(requester)

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var update models.ProfileUpdate
	if !decodeJSON(w, r, &update) {
		log.Error().Str("func", "*Handler.updateUser").Msg("invalid JSON was passed")
		return
	}

	user, err := h.services.UserService.Update(r.Context(), requester, id, update)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Int64("id", id).Msg("profile update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.services.UserService.Delete(r.Context(), requester, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteUser").Int64("id", id).Msg("account deletion failed")
		writeError(w, err)
		return
	}

	log.Info().Int64("id", id).Int64("posts_deleted", report.PostsDeleted).
		Int64("relationships_deleted", report.RelationshipsDeleted).Msg("account deleted")
	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) following(w http.ResponseWriter, r *http.Request) {
	h.writeIDs(w, r, "*Handler.following", h.services.GraphService.Following)
}

func (h *Handler) followers(w http.ResponseWriter, r *http.Request) {
	h.writeIDs(w, r, "*Handler.followers", h.services.GraphService.Followers)
}

func (h *Handler) writeIDs(w http.ResponseWriter, r *http.Request, funcName string,
	list func(ctx context.Context, userID int64) ([]int64, error)) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	ids, err := list(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("id", id).Msg("error listing relationships")
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	utils.WriteJSON(w, models.IDsResponse{UserID: id, IDs: ids, Count: len(ids)}, http.StatusOK)
}

func (h *Handler) userPosts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.services.PostService.PostsBy(r.Context(), id, page)
	if err != nil {
		log.Err(err).Str("func", "*Handler.userPosts").Int64("id", id).Msg("error listing posts")
		writeError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	utils.WriteJSON(w, models.PostsResponse{UserID: id, Posts: posts, Page: page}, http.StatusOK)
}
