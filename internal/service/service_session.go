package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/crypto"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/utils"
	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

// sessionService is the concrete implementation of SessionService.
// It verifies credentials, issues short-lived access tokens carrying the
// request identity and manages the remember digest that backs persistent
// sessions.
type sessionService struct {
	// userRepository is used to look up accounts and store remember digests.
	userRepository store.UserRepository

	// credentials verifies passwords and issues remember tokens.
	credentials crypto.CredentialManager

	// tokenSignKey is the HMAC secret used to sign and verify access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued access token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued access token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewSessionService(userRepository store.UserRepository, credentials crypto.CredentialManager, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		userRepository: userRepository,
		credentials:    credentials,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Authenticate checks an email/password pair.
//
// Returns:
//   - ErrInvalidCredentials for an unknown email or a wrong password.
//   - ErrNotActivated when the password is right but the account is not activated.
func (s *sessionService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Str("func", "*sessionService.Authenticate").Msg("login attempt for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Authenticate").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !s.credentials.VerifyPassword(user.PasswordDigest, password) {
		log.Info().Str("func", "*sessionService.Authenticate").Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !user.Activated {
		log.Info().Str("func", "*sessionService.Authenticate").Int64("user_id", user.ID).Msg("account not activated")
		return models.User{}, ErrNotActivated
	}

	return user, nil
}

// Login authenticates the user and issues an access token. With
// req.Remember a remember token is issued as well; without it any previous
// persistent session of the account is forgotten.
func (s *sessionService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return models.Session{}, err
	}

	token, err := s.CreateToken(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{User: user, AccessToken: token.String()}
	if req.Remember {
		if session.RememberToken, err = s.Remember(ctx, user.ID); err != nil {
			return models.Session{}, err
		}
	} else if err = s.Forget(ctx, user.ID); err != nil {
		return models.Session{}, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.ID).Bool("remember", req.Remember).Msg("user logged in")
	return session, nil
}

// Remember stores the digest of a new remember token and returns the raw token.
func (s *sessionService) Remember(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	token, digest, err := s.credentials.IssueToken()
	if err != nil {
		log.Err(err).Str("func", "*sessionService.Remember").Msg("error issuing remember token")
		return "", fmt.Errorf("error issuing remember token: %w", err)
	}

	if err = s.userRepository.SetRememberDigest(ctx, userID, &digest); err != nil {
		log.Err(err).Str("func", "*sessionService.Remember").Int64("user_id", userID).Msg("error storing remember digest")
		return "", translateStoreError(err)
	}

	return token, nil
}

// Forget clears the remember digest. Clearing an already empty digest succeeds.
func (s *sessionService) Forget(ctx context.Context, userID int64) error {
	if err := s.userRepository.SetRememberDigest(ctx, userID, nil); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.Forget").Int64("user_id", userID).Msg("error clearing remember digest")
		return translateStoreError(err)
	}
	return nil
}

// AuthenticatedByRemember reports whether token matches the user's remember
// digest. It is false when no persistent session exists.
func (s *sessionService) AuthenticatedByRemember(user models.User, token string) bool {
	return s.credentials.VerifyToken(token, user.RememberDigest)
}

// ResumeSession exchanges a remember token for a new access token.
func (s *sessionService) ResumeSession(ctx context.Context, req models.RememberRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, req.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Session{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionService.ResumeSession").Int64("user_id", req.UserID).Msg("user search ended with error")
		return models.Session{}, fmt.Errorf("user search ended with error: %w", err)
	}

	if !s.AuthenticatedByRemember(user, req.RememberToken) {
		log.Info().Str("func", "*sessionService.ResumeSession").Int64("user_id", user.ID).Msg("invalid remember token")
		return models.Session{}, ErrInvalidOrExpiredToken
	}

	token, err := s.CreateToken(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{User: user, AccessToken: token.String()}, nil
}

// CreateToken issues a signed access token for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, the user id as subject and the admin flag,
// and expires after tokenDuration.
func (s *sessionService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	identity := models.Identity{UserID: user.ID, Admin: user.Admin}
	token, err := utils.GenerateJWTToken(s.tokenIssuer, identity, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionService.CreateToken").Int64("user_id", user.ID).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw access token.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (s *sessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
