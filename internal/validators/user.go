package validators

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-microblog/models"
)

// Field name constants used to specify which fields should be validated.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldContent              = "content"
	FieldUserID               = "user_id"
	FieldFollowerID           = "follower_id"
	FieldFollowedID           = "followed_id"
)

const (
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MinPasswordLength = 6

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

const (
	msgBlank       = "can't be blank"
	msgInvalid     = "is invalid"
	msgTaken       = "has already been taken"
	msgNoMatch     = "doesn't match Password"
	msgTooLongFmt  = "is too long (maximum is %d characters)"
	msgTooShortFmt = "is too short (minimum is %d characters)"
)

// MsgTaken is the message attached to a duplicate email.
const MsgTaken = msgTaken

var validEmail = regexp.MustCompile(`(?i)\A[\w+\-.]+@[a-z\d\-]+(\.[a-z\d\-]+)*\.[a-z]+\z`)

// UserValidator checks account input: sign-up forms, profile updates and
// password reset forms.
type UserValidator struct {
}

// NewUserValidator returns a [Validator] for account input.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate implements [Validator].
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value, fields...)

	case models.ResetConsumeRequest:
		return v.validateResetConsume(value)
	case *models.ResetConsumeRequest:
		return v.validateResetConsume(*value)

	default:
		return ErrUnsupportedType
	}
}

// NormalizeEmail returns the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (v *UserValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	var errs ValidationErrors

	if wants(fields, FieldName) {
		validateName(&errs, req.Name)
	}
	if wants(fields, FieldEmail) {
		validateEmail(&errs, req.Email)
	}
	if wants(fields, FieldPassword) {
		validatePassword(&errs, req.Password, req.PasswordConfirmation)
	}

	return errs.Err()
}

// validateProfileUpdate only checks what the update touches. An empty
// password keeps the stored digest, so it is not validated.
func (v *UserValidator) validateProfileUpdate(req models.ProfileUpdate, fields ...string) error {
	var errs ValidationErrors

	if req.Name != nil && wants(fields, FieldName) {
		validateName(&errs, *req.Name)
	}
	if req.Email != nil && wants(fields, FieldEmail) {
		validateEmail(&errs, *req.Email)
	}
	if req.Password != "" && wants(fields, FieldPassword) {
		validatePassword(&errs, req.Password, req.PasswordConfirmation)
	}

	return errs.Err()
}

func (v *UserValidator) validateResetConsume(req models.ResetConsumeRequest) error {
	var errs ValidationErrors
	validatePassword(&errs, req.Password, req.PasswordConfirmation)
	return errs.Err()
}

func validateName(errs *ValidationErrors, name string) {
	switch {
	case strings.TrimSpace(name) == "":
		errs.Add(FieldName, msgBlank)
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs.Add(FieldName, fmt.Sprintf(msgTooLongFmt, MaxNameLength))
	}
}

func validateEmail(errs *ValidationErrors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs.Add(FieldEmail, msgBlank)
	case utf8.RuneCountInString(email) > MaxEmailLength:
		errs.Add(FieldEmail, fmt.Sprintf(msgTooLongFmt, MaxEmailLength))
	case !validEmail.MatchString(email):
		errs.Add(FieldEmail, msgInvalid)
	}
}

func validatePassword(errs *ValidationErrors, password, confirmation string) {
	switch {
	case strings.TrimSpace(password) == "":
		errs.Add(FieldPassword, msgBlank)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		errs.Add(FieldPassword, fmt.Sprintf(msgTooShortFmt, MinPasswordLength))
	case len(password) > MaxPasswordBytes:
		errs.Add(FieldPassword, fmt.Sprintf(msgTooLongFmt, MaxPasswordBytes))
	}

	if password != confirmation {
		errs.Add(FieldPasswordConfirmation, msgNoMatch)
	}
}

// wants reports whether field is in scope. No scope means every field.
func wants(fields []string, field string) bool {
	return len(fields) == 0 || slices.Contains(fields, field)
}
