package service

import (
	"context"
	"iter"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/models"
)

// DefaultFeedPageSize is the number of posts fetched per round trip when no
// page size is configured.
const DefaultFeedPageSize = 30

// feedService is the concrete implementation of FeedService.
// The feed is never materialized: every page is a fresh keyset query, so
// follows, unfollows and new posts are visible on the next iteration.
type feedService struct {
	postRepository store.PostRepository
	pageSize       int

	logger *logger.Logger
}

func NewFeedService(postRepository store.PostRepository, pageSize int, logger *logger.Logger) FeedService {
	if pageSize <= 0 {
		pageSize = DefaultFeedPageSize
	}
	return &feedService{
		postRepository: postRepository,
		pageSize:       pageSize,
		logger:         logger,
	}
}

// Feed implements FeedService. The sequence stops after the first error,
// which is yielded together with a zero Post.
func (f *feedService) Feed(ctx context.Context, viewerID int64) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		var cursor models.FeedCursor
		for {
			if err := ctx.Err(); err != nil {
				yield(models.Post{}, err)
				return
			}

			posts, err := f.postRepository.Feed(ctx, viewerID, cursor, uint64(f.pageSize))
			if err != nil {
				logger.FromContext(ctx).Err(err).Str("func", "*feedService.Feed").Int64("viewer_id", viewerID).Msg("error reading feed")
				yield(models.Post{}, err)
				return
			}

			for _, post := range posts {
				if !yield(post, nil) {
					return
				}
			}

			if len(posts) < f.pageSize {
				return
			}
			cursor = models.CursorAfter(posts[len(posts)-1])
		}
	}
}

// FeedPage returns up to limit posts strictly after cursor. Next is set
// only when more posts exist.
func (f *feedService) FeedPage(ctx context.Context, viewerID int64, cursor models.FeedCursor, limit int) (models.FeedPage, error) {
	switch {
	case limit <= 0:
		limit = f.pageSize
	case limit > models.MaxPerPage:
		limit = models.MaxPerPage
	}

	posts, err := f.postRepository.Feed(ctx, viewerID, cursor, uint64(limit)+1)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*feedService.FeedPage").Int64("viewer_id", viewerID).Msg("error reading feed page")
		return models.FeedPage{}, err
	}

	page := models.FeedPage{Posts: posts}
	if len(posts) > limit {
		page.Posts = posts[:limit]
		next := models.CursorAfter(page.Posts[limit-1])
		page.Next = &next
	}
	if page.Posts == nil {
		page.Posts = []models.Post{}
	}

	return page, nil
}
