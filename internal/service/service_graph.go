package service

import (
	"context"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

// graphService is the concrete implementation of GraphService.
// Follow and unfollow are idempotent: repeating either reports the edge
// state with Changed set to false.
type graphService struct {
	userRepository         store.UserRepository
	relationshipRepository store.RelationshipRepository
	validator              validators.Validator

	logger *logger.Logger
}

func NewGraphService(userRepository store.UserRepository, relationshipRepository store.RelationshipRepository, logger *logger.Logger) GraphService {
	return &graphService{
		userRepository:         userRepository,
		relationshipRepository: relationshipRepository,
		validator:              validators.NewRelationshipValidator(),
		logger:                 logger,
	}
}

// Follow creates the edge followerID → followedID. Following oneself is a
// validation error; following a missing account is ErrNotFound.
func (g *graphService) Follow(ctx context.Context, followerID, followedID int64) (models.EdgeState, error) {
	log := logger.FromContext(ctx)

	edge := models.Relationship{FollowerID: followerID, FollowedID: followedID}
	if err := g.validator.Validate(ctx, edge); err != nil {
		return models.EdgeState{}, err
	}

	created, err := g.relationshipRepository.Follow(ctx, followerID, followedID)
	if err != nil {
		log.Err(err).Str("func", "*graphService.Follow").
			Int64("follower_id", followerID).
			Int64("followed_id", followedID).
			Msg("follow ended with error")
		return models.EdgeState{}, translateStoreError(err)
	}

	return models.EdgeState{FollowerID: followerID, FollowedID: followedID, Following: true, Changed: created}, nil
}

// Unfollow removes the edge. Removing an absent edge is a no-op, unless the
// target account does not exist, which is ErrNotFound.
func (g *graphService) Unfollow(ctx context.Context, followerID, followedID int64) (models.EdgeState, error) {
	removed, err := g.relationshipRepository.Unfollow(ctx, followerID, followedID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*graphService.Unfollow").
			Int64("follower_id", followerID).
			Int64("followed_id", followedID).
			Msg("unfollow ended with error")
		return models.EdgeState{}, translateStoreError(err)
	}

	if !removed {
		if err = g.ensureUser(ctx, followedID); err != nil {
			return models.EdgeState{}, err
		}
	}

	return models.EdgeState{FollowerID: followerID, FollowedID: followedID, Following: false, Changed: removed}, nil
}

func (g *graphService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	following, err := g.relationshipRepository.IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, translateStoreError(err)
	}
	return following, nil
}

// Followers returns the ids of accounts following userID.
func (g *graphService) Followers(ctx context.Context, userID int64) ([]int64, error) {
	if err := g.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := g.relationshipRepository.FollowerIDs(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*graphService.Followers").Int64("user_id", userID).Msg("error listing followers")
		return nil, translateStoreError(err)
	}
	return ids, nil
}

// Following returns the ids of accounts userID follows.
func (g *graphService) Following(ctx context.Context, userID int64) ([]int64, error) {
	if err := g.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := g.relationshipRepository.FollowingIDs(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*graphService.Following").Int64("user_id", userID).Msg("error listing followed accounts")
		return nil, translateStoreError(err)
	}
	return ids, nil
}

func (g *graphService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := g.userRepository.FindUserByID(ctx, userID); err != nil {
		return translateStoreError(err)
	}
	return nil
}
