package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-microblog/internal/crypto"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

// userService is the concrete implementation of UserService.
// It owns the account lifecycle: registration, activation, profile edits,
// password resets and cascading deletion. Raw tokens produced here leave
// the service exactly once, as a return value.
type userService struct {
	userRepository         store.UserRepository
	relationshipRepository store.RelationshipRepository
	postRepository         store.PostRepository

	// credentials hashes passwords and issues activation and reset tokens.
	credentials crypto.CredentialManager

	logger *logger.Logger
}

// NewUserService constructs a UserService over the given repositories.
// Input validation is not performed here; wrap the result with
// NewUserValidationService.
func NewUserService(
	userRepository store.UserRepository,
	relationshipRepository store.RelationshipRepository,
	postRepository store.PostRepository,
	credentials crypto.CredentialManager,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepository:         userRepository,
		relationshipRepository: relationshipRepository,
		postRepository:         postRepository,
		credentials:            credentials,
		logger:                 logger,
	}
}

// Create registers a new, unactivated account.
//
// The email is stored lower-cased, the password only as a bcrypt digest and
// the activation token only as its HMAC digest. A case-insensitive email
// collision is reported as a validation error on the email field that also
// matches store.ErrEmailAlreadyExists.
func (u *userService) Create(ctx context.Context, req models.SignupRequest) (models.User, string, error) {
	log := logger.FromContext(ctx)

	passwordDigest, err := u.credentials.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Msg("error hashing password")
		return models.User{}, "", fmt.Errorf("error hashing password: %w", err)
	}

	token, digest, err := u.credentials.IssueToken()
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Msg("error issuing activation token")
		return models.User{}, "", fmt.Errorf("error issuing activation token: %w", err)
	}

	sentAt := u.credentials.Now()
	user := models.User{
		Name:             req.Name,
		Email:            validators.NormalizeEmail(req.Email),
		PasswordDigest:   passwordDigest,
		ActivationDigest: &digest,
		ActivationSentAt: &sentAt,
	}

	created, err := u.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Msg("user creation ended with error")
		return models.User{}, "", translateStoreError(err)
	}

	log.Info().Int64("user_id", created.ID).Msg("user created")
	return created, token, nil
}

func (u *userService) Find(ctx context.Context, id int64) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, translateStoreError(err)
	}
	return user, nil
}

func (u *userService) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := u.userRepository.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return models.User{}, translateStoreError(err)
	}
	return user, nil
}

// Update applies a partial profile edit to the requester's own account.
// The admin flag is ignored; a blank password keeps the stored digest.
func (u *userService) Update(ctx context.Context, requester models.Identity, id int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if requester.UserID != id {
		log.Warn().Str("func", "*userService.Update").
			Int64("requester_id", requester.UserID).
			Int64("user_id", id).
			Msg("attempt to edit another user's profile")
		return models.User{}, ErrForbidden
	}

	if update.Admin != nil {
		log.Debug().Str("func", "*userService.Update").Int64("user_id", id).Msg("admin flag in profile update ignored")
	}

	changes := models.UserChanges{Name: update.Name}
	if update.Email != nil {
		email := validators.NormalizeEmail(*update.Email)
		changes.Email = &email
	}
	if update.Password != "" {
		digest, err := u.credentials.HashPassword(update.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.Update").Msg("error hashing password")
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		changes.PasswordDigest = &digest
	}

	user, err := u.userRepository.UpdateUser(ctx, id, changes)
	if err != nil {
		log.Err(err).Str("func", "*userService.Update").Int64("user_id", id).Msg("user update ended with error")
		return models.User{}, translateStoreError(err)
	}

	return user, nil
}

// Delete removes the account and everything that depends on it.
// Only admins or the account owner may delete an account. Deleting another
// account requires the stored admin flag; the token claim alone is not enough.
func (u *userService) Delete(ctx context.Context, requester models.Identity, id int64) (models.DeletionReport, error) {
	log := logger.FromContext(ctx)

	if !requester.CanManage(id) {
		log.Warn().Str("func", "*userService.Delete").
			Int64("requester_id", requester.UserID).
			Int64("user_id", id).
			Msg("attempt to delete another user")
		return models.DeletionReport{}, ErrForbidden
	}

	if requester.UserID != id {
		if err := u.ensureAdmin(ctx, requester.UserID); err != nil {
			log.Warn().Err(err).Str("func", "*userService.Delete").
				Int64("requester_id", requester.UserID).
				Int64("user_id", id).
				Msg("admin rights not confirmed")
			return models.DeletionReport{}, err
		}
	}

	report, err := u.userRepository.DeleteUser(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "*userService.Delete").Int64("user_id", id).Msg("user deletion ended with error")
		return models.DeletionReport{}, translateStoreError(err)
	}

	return report, nil
}

// Activate marks the account activated without a token.
// Activating an already activated account keeps its original activation time.
func (u *userService) Activate(ctx context.Context, id int64) (models.User, error) {
	user, err := u.userRepository.ActivateUser(ctx, id, nil)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Activate").Int64("user_id", id).Msg("activation ended with error")
		return models.User{}, translateStoreError(err)
	}
	return user, nil
}

// ActivateWithToken consumes the activation token of the account.
//
// An unknown account, an already activated account, a cleared digest and a
// wrong token all yield ErrInvalidOrExpiredToken. The digest is cleared by a
// compare-and-swap, so the same token never activates twice.
func (u *userService) ActivateWithToken(ctx context.Context, id int64, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.ActivateWithToken").Int64("user_id", id).Msg("user search ended with error")
		return models.User{}, translateStoreError(err)
	}

	if user.Activated || !u.credentials.VerifyToken(token, user.ActivationDigest) {
		log.Info().Str("func", "*userService.ActivateWithToken").Int64("user_id", id).Msg("invalid activation token")
		return models.User{}, ErrInvalidOrExpiredToken
	}

	activated, err := u.userRepository.ActivateUser(ctx, id, user.ActivationDigest)
	if errors.Is(err, store.ErrDigestMismatch) || errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.ActivateWithToken").Int64("user_id", id).Msg("activation ended with error")
		return models.User{}, translateStoreError(err)
	}

	log.Info().Int64("user_id", id).Msg("user activated")
	return activated, nil
}

// RequestReset stores a fresh reset digest for the account with the given
// email and returns the raw reset token. A previous pending reset is replaced.
func (u *userService) RequestReset(ctx context.Context, email string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	user, err := u.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}

	token, digest, err := u.credentials.IssueToken()
	if err != nil {
		log.Err(err).Str("func", "*userService.RequestReset").Msg("error issuing reset token")
		return models.User{}, "", fmt.Errorf("error issuing reset token: %w", err)
	}

	sentAt := u.credentials.Now()
	if err = u.userRepository.SetResetDigest(ctx, user.ID, digest, sentAt); err != nil {
		log.Err(err).Str("func", "*userService.RequestReset").Int64("user_id", user.ID).Msg("error storing reset digest")
		return models.User{}, "", translateStoreError(err)
	}

	user.ResetDigest = &digest
	user.ResetSentAt = &sentAt

	return user, token, nil
}

// ConsumeReset replaces the password of an activated account whose reset
// token matches and is not expired. An expired reset is cleared. The reset
// digest is swapped out atomically, so a token works only once.
func (u *userService) ConsumeReset(ctx context.Context, req models.ResetConsumeRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, req.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.ConsumeReset").Int64("user_id", req.UserID).Msg("user search ended with error")
		return models.User{}, translateStoreError(err)
	}

	if !user.Activated || !u.credentials.VerifyToken(req.Token, user.ResetDigest) {
		log.Info().Str("func", "*userService.ConsumeReset").Int64("user_id", user.ID).Msg("invalid reset token")
		return models.User{}, ErrInvalidOrExpiredToken
	}

	if u.credentials.ResetExpired(user.ResetSentAt) {
		if err = u.userRepository.ClearResetDigest(ctx, user.ID); err != nil {
			log.Err(err).Str("func", "*userService.ConsumeReset").Int64("user_id", user.ID).Msg("error clearing expired reset digest")
		}
		log.Info().Str("func", "*userService.ConsumeReset").Int64("user_id", user.ID).Msg("password reset has expired")
		return models.User{}, ErrInvalidOrExpiredToken
	}

	passwordDigest, err := u.credentials.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.ConsumeReset").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	updated, err := u.userRepository.ConsumeResetDigest(ctx, user.ID, *user.ResetDigest, passwordDigest)
	if errors.Is(err, store.ErrDigestMismatch) || errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.ConsumeReset").Int64("user_id", user.ID).Msg("password reset ended with error")
		return models.User{}, translateStoreError(err)
	}

	log.Info().Int64("user_id", user.ID).Msg("password has been reset")
	return updated, nil
}

// SetAdmin grants or revokes the admin flag. It is reachable only from the
// administrative channel, never from profile updates.
func (u *userService) SetAdmin(ctx context.Context, id int64, admin bool) (models.User, error) {
	user, err := u.userRepository.SetAdmin(ctx, id, admin)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.SetAdmin").Int64("user_id", id).Msg("admin flag update ended with error")
		return models.User{}, translateStoreError(err)
	}
	return user, nil
}

func (u *userService) ListActivated(ctx context.Context, page models.Page) ([]models.User, error) {
	users, err := u.userRepository.ListActivatedUsers(ctx, page.Normalize())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListActivated").Msg("error listing users")
		return nil, translateStoreError(err)
	}
	return users, nil
}

// Profile returns the account with its counters. Unactivated accounts are
// reported as ErrNotFound.
func (u *userService) Profile(ctx context.Context, id int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := u.Find(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}
	if !user.Activated {
		return models.Profile{}, ErrNotFound
	}

	profile := models.Profile{User: user}
	counters := []struct {
		name  string
		count func(context.Context, int64) (int64, error)
		dst   *int64
	}{
		{name: "following", count: u.relationshipRepository.CountFollowing, dst: &profile.FollowingCount},
		{name: "followers", count: u.relationshipRepository.CountFollowers, dst: &profile.FollowersCount},
		{name: "posts", count: u.postRepository.CountPostsByUser, dst: &profile.PostsCount},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx, id); err != nil {
			log.Err(err).Str("func", "*userService.Profile").Str("counter", c.name).Int64("user_id", id).Msg("error counting")
			return models.Profile{}, translateStoreError(err)
		}
	}

	return profile, nil
}

// translateStoreError maps storage failures onto service error kinds.
func translateStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fmt.Errorf("%w: %w", validators.NewFieldError(validators.FieldEmail, validators.MsgTaken), err)
	case errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}

// ensureAdmin confirms that the stored account holds the admin flag.
func (u *userService) ensureAdmin(ctx context.Context, id int64) error {
	user, err := u.userRepository.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return translateStoreError(err)
	}
	if !user.Admin {
		return ErrForbidden
	}
	return nil
}
