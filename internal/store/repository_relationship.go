package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-microblog/internal/logger"
)

// relationshipRepository is the SQL implementation of [RelationshipRepository].
type relationshipRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRelationshipRepository constructs a [RelationshipRepository].
func NewRelationshipRepository(db *DB, logger *logger.Logger) RelationshipRepository {
	logger.Debug().Msg("creating relationship repository")
	return &relationshipRepository{
		db:     db,
		logger: logger,
	}
}

// Follow inserts the edge unless it already exists. An endpoint that does
// not exist yields [ErrUserNotFound].
func (r *relationshipRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFollowQuery(r.db.builder, followerID, followedID, r.db.now())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*relationshipRepository.Follow").
			Int64("follower_id", followerID).Int64("followed_id", followedID).
			Msg("error inserting relationship")
		return false, r.db.translate(err, ErrExecutingStatement)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// Unfollow deletes the edge. Deleting an absent edge is not an error.
func (r *relationshipRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUnfollowQuery(r.db.builder, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*relationshipRepository.Unfollow").
			Int64("follower_id", followerID).Int64("followed_id", followedID).
			Msg("error deleting relationship")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// IsFollowing reports whether the edge exists.
func (r *relationshipRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	n, err := r.count(ctx, "*relationshipRepository.IsFollowing", sq.Eq{"follower_id": followerID, "followed_id": followedID})
	return n > 0, err
}

// FollowerIDs lists the accounts following userID.
func (r *relationshipRepository) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, "*relationshipRepository.FollowerIDs", "follower_id", sq.Eq{"followed_id": userID})
}

// FollowingIDs lists the accounts userID follows.
func (r *relationshipRepository) FollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, "*relationshipRepository.FollowingIDs", "followed_id", sq.Eq{"follower_id": userID})
}

func (r *relationshipRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, "*relationshipRepository.CountFollowers", sq.Eq{"followed_id": userID})
}

func (r *relationshipRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, "*relationshipRepository.CountFollowing", sq.Eq{"follower_id": userID})
}

func (r *relationshipRepository) count(ctx context.Context, funcName string, where sq.Eq) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountEdgesQuery(r.db.builder, where)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", funcName).Msg("error counting relationships")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

func (r *relationshipRepository) ids(ctx context.Context, funcName, column string, where sq.Eq) ([]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildEdgeIDsQuery(r.db.builder, column, where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying relationships")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning relationship")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
