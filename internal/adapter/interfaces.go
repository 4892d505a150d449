// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the microblog server.
//
// The primary abstraction is [Mailer], which delivers activation and
// password reset messages. The package ships an HTTP relay implementation
// ([NewHTTPMailer]) and a log-only fallback ([NewLogMailer]) used when no
// relay is configured.
//
// Relay failures are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-microblog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers account emails. The raw token is embedded into the link
// of the message and must never be logged.
type Mailer interface {
	// SendActivation delivers the account activation link to user.
	SendActivation(ctx context.Context, user models.User, token string) error

	// SendPasswordReset delivers the password reset link to user.
	SendPasswordReset(ctx context.Context, user models.User, token string) error
}
