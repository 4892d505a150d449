package http

import (
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
)

// follow creates an edge from the caller. 201 when the edge is new, 200
// when it already existed.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.FollowRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.follow").Msg("invalid JSON was passed")
		return
	}

	state, err := h.services.GraphService.Follow(r.Context(), requester.UserID, req.FollowedID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.follow").Int64("followed_id", req.FollowedID).Msg("follow failed")
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if state.Changed {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, state, status)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	followedID, err := pathID(r, "followed_id")
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := h.services.GraphService.Unfollow(r.Context(), requester.UserID, followedID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.unfollow").Int64("followed_id", followedID).Msg("unfollow failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}
