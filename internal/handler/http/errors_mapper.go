package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/app"
	"github.com/MKhiriev/go-microblog/internal/service"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

// Every key maps to exactly one status; an error chain never matches two
// keys with different statuses.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnauthorized:            http.StatusUnauthorized,
	service.ErrNotActivated:            http.StatusForbidden,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrInvalidOrExpiredToken:   http.StatusBadRequest,
	service.ErrNotFound:                http.StatusNotFound,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	errInvalidPathID: http.StatusBadRequest,
	errInvalidQuery:  http.StatusBadRequest,

	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrEmailAlreadyExists: http.StatusUnprocessableEntity,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided:     app.MsgInvalidDataProvided,
	service.ErrInvalidCredentials:      app.MsgInvalidCredentials,
	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
	service.ErrUnauthorized:            app.MsgUnauthorized,
	service.ErrNotActivated:            app.MsgAccountNotActivated,
	service.ErrForbidden:               app.MsgAccessDenied,
	service.ErrInvalidOrExpiredToken:   app.MsgInvalidOrExpiredToken,
	service.ErrNotFound:                app.MsgNotFound,
	store.ErrUserNotFound:              app.MsgNotFound,
	errInvalidPathID:                   app.MsgInvalidDataProvided,
	errInvalidQuery:                    app.MsgInvalidDataProvided,
}

func statusFromError(err error) int {
	if _, ok := validators.AsValidationErrors(err); ok {
		return http.StatusUnprocessableEntity
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return app.MsgInternalServerError
	}
	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}
	return http.StatusText(status)
}

// writeError renders err as a JSON [models.ErrorResponse]. Validation
// failures are reported with every offending field.
func writeError(w http.ResponseWriter, err error) {
	if v, ok := validators.AsValidationErrors(err); ok {
		fields := make([]models.FieldErrorResponse, 0, len(v))
		for _, fe := range v {
			fields = append(fields, models.FieldErrorResponse{Field: fe.Field, Message: fe.Message})
		}
		utils.WriteJSON(w, models.ErrorResponse{
			Error:  app.MsgValidationFailed,
			Count:  v.Count(),
			Fields: fields,
		}, http.StatusUnprocessableEntity)
		return
	}

	status := statusFromError(err)
	utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err, status)}, status)
}
