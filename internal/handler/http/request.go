package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-microblog/internal/app"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v. On failure a 400 response is
// written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgInvalidJSON}, http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", errInvalidPathID, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidQuery, name)
	}
	return n, nil
}

func pageFromQuery(r *http.Request) (models.Page, error) {
	number, err := queryInt(r, "page")
	if err != nil {
		return models.Page{}, err
	}
	perPage, err := queryInt(r, "per_page")
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Number: number, PerPage: perPage}.Normalize(), nil
}

// cursorFromQuery reads the before_id/before_ts pair. Both must be given
// together; none means the start of the feed.
func cursorFromQuery(r *http.Request) (models.FeedCursor, error) {
	q := r.URL.Query()
	rawID, rawTS := q.Get("before_id"), q.Get("before_ts")
	if rawID == "" && rawTS == "" {
		return models.FeedCursor{}, nil
	}
	if rawID == "" || rawTS == "" {
		return models.FeedCursor{}, fmt.Errorf("%w: before_id and before_ts go together", errInvalidQuery)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return models.FeedCursor{}, fmt.Errorf("%w: before_id", errInvalidQuery)
	}
	ts, err := time.Parse(time.RFC3339Nano, rawTS)
	if err != nil {
		return models.FeedCursor{}, fmt.Errorf("%w: before_ts", errInvalidQuery)
	}

	return models.FeedCursor{CreatedAt: ts.UTC().Truncate(time.Microsecond), ID: id}, nil
}

// identity returns the authenticated caller. The auth middleware guarantees
// presence on protected routes.
func identity(r *http.Request) (models.Identity, error) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, service.ErrUnauthorized
	}
	return id, nil
}

// writeSession writes s as JSON and mirrors the access token in the
// Authorization header.
func writeSession(w http.ResponseWriter, s models.Session, status int) {
	w.Header().Set("Authorization", "Bearer "+s.AccessToken)
	utils.WriteJSON(w, s, status)
}
