package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("mail relay rejected the message")
	ErrUnauthorized        = errors.New("mail relay unauthorized")
	ErrForbidden           = errors.New("mail relay forbidden")
	ErrNotFound            = errors.New("mail relay endpoint not found")
	ErrBadGateway          = errors.New("mail relay bad gateway")
	ErrInternalServerError = errors.New("mail relay internal error")

	// ErrInvalidRelayURL is returned when the configured relay address cannot be used.
	ErrInvalidRelayURL = errors.New("invalid mail relay url")
)
