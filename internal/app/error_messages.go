// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// microblog server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a path or query parameter
	// cannot be parsed.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgValidationFailed heads the body of a 422 response; the offending
	// fields are listed next to it.
	MsgValidationFailed = "validation failed"

	// MsgInvalidCredentials is returned for an unknown email or a wrong
	// password. Both cases share this message.
	MsgInvalidCredentials = "invalid email/password combination"

	// MsgAccountNotActivated is returned when the password matched but the
	// account has not been activated yet.
	MsgAccountNotActivated = "account not activated, check your email for the activation link"

	// MsgInvalidOrExpiredToken is returned for activation, reset and
	// remember tokens that do not match, were already used, or expired.
	MsgInvalidOrExpiredToken = "invalid or expired link"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer access token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnauthorized is returned when no authenticated identity is present.
	MsgUnauthorized = "please log in"

	// MsgAccessDenied is returned when the authenticated user attempts to
	// modify an account that is not theirs.
	MsgAccessDenied = "access denied"

	// MsgNotFound is returned when the requested account does not exist or
	// is not activated.
	MsgNotFound = "not found"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
