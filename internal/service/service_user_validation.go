package service

import (
	"context"

	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

// UserValidationService validates account input before it reaches the
// wrapped UserService. Calls without user input are passed through.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) Create(ctx context.Context, req models.SignupRequest) (models.User, string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, "", err
	}
	return v.inner.Create(ctx, req)
}

func (v *UserValidationService) Find(ctx context.Context, id int64) (models.User, error) {
	return v.inner.Find(ctx, id)
}

func (v *UserValidationService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return v.inner.FindByEmail(ctx, email)
}

// Update rejects edits of another account before looking at the payload.
func (v *UserValidationService) Update(ctx context.Context, requester models.Identity, id int64, update models.ProfileUpdate) (models.User, error) {
	if requester.UserID != id {
		return models.User{}, ErrForbidden
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.User{}, err
	}
	return v.inner.Update(ctx, requester, id, update)
}

func (v *UserValidationService) Delete(ctx context.Context, requester models.Identity, id int64) (models.DeletionReport, error) {
	return v.inner.Delete(ctx, requester, id)
}

func (v *UserValidationService) Activate(ctx context.Context, id int64) (models.User, error) {
	return v.inner.Activate(ctx, id)
}

func (v *UserValidationService) ActivateWithToken(ctx context.Context, id int64, token string) (models.User, error) {
	return v.inner.ActivateWithToken(ctx, id, token)
}

func (v *UserValidationService) RequestReset(ctx context.Context, email string) (models.User, string, error) {
	return v.inner.RequestReset(ctx, email)
}

// ConsumeReset rejects an invalid new password before the token is looked at,
// so a bad form never burns a valid reset token.
func (v *UserValidationService) ConsumeReset(ctx context.Context, req models.ResetConsumeRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}
	return v.inner.ConsumeReset(ctx, req)
}

func (v *UserValidationService) SetAdmin(ctx context.Context, id int64, admin bool) (models.User, error) {
	return v.inner.SetAdmin(ctx, id, admin)
}

func (v *UserValidationService) ListActivated(ctx context.Context, page models.Page) ([]models.User, error) {
	return v.inner.ListActivated(ctx, page)
}

func (v *UserValidationService) Profile(ctx context.Context, id int64) (models.Profile, error) {
	return v.inner.Profile(ctx, id)
}

func (v *UserValidationService) Wrap(wrapped UserService) UserService {
	v.inner = wrapped
	return v
}
