package service

import (
	"context"

	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/internal/store"
	"github.com/MKhiriev/go-microblog/internal/validators"
	"github.com/MKhiriev/go-microblog/models"
)

type postService struct {
	userRepository store.UserRepository
	postRepository store.PostRepository

	logger *logger.Logger
}

func NewPostService(userRepository store.UserRepository, postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		userRepository: userRepository,
		postRepository: postRepository,
		logger:         logger,
	}
}

// Create stores a post authored by ownerID. A missing owner is ErrNotFound.
func (p *postService) Create(ctx context.Context, ownerID int64, content string) (models.Post, error) {
	post, err := p.postRepository.CreatePost(ctx, models.Post{UserID: ownerID, Content: content})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.Create").Int64("user_id", ownerID).Msg("post creation ended with error")
		return models.Post{}, translateStoreError(err)
	}
	return post, nil
}

// PostsBy returns one page of the owner's posts, newest first.
func (p *postService) PostsBy(ctx context.Context, ownerID int64, page models.Page) ([]models.Post, error) {
	if _, err := p.userRepository.FindUserByID(ctx, ownerID); err != nil {
		return nil, translateStoreError(err)
	}

	posts, err := p.postRepository.PostsByUser(ctx, ownerID, page.Normalize())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.PostsBy").Int64("user_id", ownerID).Msg("error listing posts")
		return nil, translateStoreError(err)
	}
	return posts, nil
}

// DeleteAllBy removes every post of the owner and reports how many were removed.
func (p *postService) DeleteAllBy(ctx context.Context, ownerID int64) (int64, error) {
	n, err := p.postRepository.DeleteAllByUser(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postService.DeleteAllBy").Int64("user_id", ownerID).Msg("error deleting posts")
		return 0, translateStoreError(err)
	}
	return n, nil
}

// PostValidationService validates post content before it reaches the
// wrapped PostService.
type PostValidationService struct {
	inner     PostService
	validator validators.Validator
}

func NewPostValidationService() PostServiceWrapper {
	return &PostValidationService{
		validator: validators.NewPostValidator(),
	}
}

func (v *PostValidationService) Create(ctx context.Context, ownerID int64, content string) (models.Post, error) {
	if err := v.validator.Validate(ctx, models.Post{UserID: ownerID, Content: content}); err != nil {
		return models.Post{}, err
	}
	return v.inner.Create(ctx, ownerID, content)
}

func (v *PostValidationService) PostsBy(ctx context.Context, ownerID int64, page models.Page) ([]models.Post, error) {
	return v.inner.PostsBy(ctx, ownerID, page)
}

func (v *PostValidationService) DeleteAllBy(ctx context.Context, ownerID int64) (int64, error) {
	return v.inner.DeleteAllBy(ctx, ownerID)
}

func (v *PostValidationService) Wrap(wrapped PostService) PostService {
	v.inner = wrapped
	return v
}
