package http

import (
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
)

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.PostRequest
	if !decodeJSON(w, r, &req) {
		log.Error().Str("func", "*Handler.createPost").Msg("invalid JSON was passed")
		return
	}

	post, err := h.services.PostService.Create(r.Context(), requester.UserID, req.Content)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createPost").Msg("post creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, post, http.StatusCreated)
}

// feed returns one keyset page of the caller's feed. The Next cursor of the
// response is passed back as before_id/before_ts.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	requester, err := identity(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cursor, err := cursorFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.services.FeedService.FeedPage(r.Context(), requester.UserID, cursor, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.feed").Msg("error reading feed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}
