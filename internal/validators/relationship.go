package validators

import (
	"context"

	"github.com/MKhiriev/go-microblog/models"
)

const msgSelfFollow = "can't be the same account as the follower"

// RelationshipValidator checks follow edges. An account may not follow
// itself.
type RelationshipValidator struct {
}

// NewRelationshipValidator returns a [Validator] for follow edges.
func NewRelationshipValidator() Validator {
	return &RelationshipValidator{}
}

// Validate implements [Validator].
func (v *RelationshipValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Relationship:
		return v.validateRelationship(value)
	case *models.Relationship:
		return v.validateRelationship(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *RelationshipValidator) validateRelationship(rel models.Relationship) error {
	var errs ValidationErrors

	if rel.FollowerID <= 0 {
		errs.Add(FieldFollowerID, msgBlank)
	}
	switch {
	case rel.FollowedID <= 0:
		errs.Add(FieldFollowedID, msgBlank)
	case rel.FollowedID == rel.FollowerID:
		errs.Add(FieldFollowedID, msgSelfFollow)
	}

	return errs.Err()
}
