package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
)

// postRepository is the SQL implementation of [PostRepository].
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository].
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost persists post. A missing owner yields [ErrUserNotFound].
func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.db.now()
	}

	query, args, err := buildInsertPostQuery(r.db.builder, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Int64("user_id", post.UserID).Msg("error inserting post")
		return models.Post{}, r.db.translate(err, ErrExecutingStatement)
	}

	return post, nil
}

// PostsByUser returns one page of the author's posts, newest first.
func (r *postRepository) PostsByUser(ctx context.Context, userID int64, page models.Page) ([]models.Post, error) {
	query, args, err := buildPostsByUserQuery(r.db.builder, userID, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryPosts(ctx, "*postRepository.PostsByUser", query, args)
}

func (r *postRepository) CountPostsByUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountPostsByUserQuery(r.db.builder, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", "*postRepository.CountPostsByUser").Msg("error counting posts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

// DeleteAllByUser removes every post of the author and returns how many
// were removed. An author without posts yields zero.
func (r *postRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeletePostsByUserQuery(r.db.builder, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.DeleteAllByUser").Int64("user_id", userID).Msg("error deleting posts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

// Feed implements [PostRepository].
func (r *postRepository) Feed(ctx context.Context, viewerID int64, cursor models.FeedCursor, limit uint64) ([]models.Post, error) {
	query, args, err := buildFeedQuery(r.db.builder, viewerID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryPosts(ctx, "*postRepository.Feed", query, args)
}

func (r *postRepository) queryPosts(ctx context.Context, funcName, query string, args []any) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning post")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}
