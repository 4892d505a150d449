package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-microblog/models"
)

// MaxContentLength is the longest post, in characters.
const MaxContentLength = 140

// PostValidator checks post input.
type PostValidator struct {
}

// NewPostValidator returns a [Validator] for posts.
func NewPostValidator() Validator {
	return &PostValidator{}
}

// Validate implements [Validator].
func (v *PostValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Post:
		return v.validatePost(value, fields...)
	case *models.Post:
		return v.validatePost(*value, fields...)
	case models.PostRequest:
		return v.validatePost(models.Post{Content: value.Content}, FieldContent)
	case *models.PostRequest:
		return v.validatePost(models.Post{Content: value.Content}, FieldContent)
	default:
		return ErrUnsupportedType
	}
}

func (v *PostValidator) validatePost(post models.Post, fields ...string) error {
	var errs ValidationErrors

	if wants(fields, FieldUserID) && post.UserID <= 0 {
		errs.Add(FieldUserID, msgBlank)
	}
	if wants(fields, FieldContent) {
		switch {
		case strings.TrimSpace(post.Content) == "":
			errs.Add(FieldContent, msgBlank)
		case utf8.RuneCountInString(post.Content) > MaxContentLength:
			errs.Add(FieldContent, fmt.Sprintf(msgTooLongFmt, MaxContentLength))
		}
	}

	return errs.Err()
}
