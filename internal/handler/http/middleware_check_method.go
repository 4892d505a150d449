// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/app"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/models"
)

// notFound replaces chi's plain-text 404 with a JSON [models.ErrorResponse].
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgNotFound}, http.StatusNotFound)
}

// methodNotAllowed replaces chi's plain-text 405 for a known path requested
// with an unregistered method.
func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{
		Error: http.StatusText(http.StatusMethodNotAllowed),
	}, http.StatusMethodNotAllowed)
}
