package service

import (
	"context"
	"iter"

	"github.com/MKhiriev/go-microblog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserService manages accounts and their credential lifecycle.
type UserService interface {
	// Create registers an unactivated account and returns it together with
	// the raw activation token, which must be delivered to the user once.
	Create(ctx context.Context, req models.SignupRequest) (models.User, string, error)
	Find(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// Update edits the requester's own profile. The admin flag is never
	// changed and a blank password keeps the stored one.
	Update(ctx context.Context, requester models.Identity, id int64, update models.ProfileUpdate) (models.User, error)

	// Delete removes the account with every post and edge touching it.
	// Only an admin or the account owner may do so.
	Delete(ctx context.Context, requester models.Identity, id int64) (models.DeletionReport, error)

	// Activate unconditionally activates the account. Repeated calls are no-ops.
	Activate(ctx context.Context, id int64) (models.User, error)
	ActivateWithToken(ctx context.Context, id int64, token string) (models.User, error)

	// RequestReset starts a password reset and returns the raw reset token.
	RequestReset(ctx context.Context, email string) (models.User, string, error)
	ConsumeReset(ctx context.Context, req models.ResetConsumeRequest) (models.User, error)

	SetAdmin(ctx context.Context, id int64, admin bool) (models.User, error)
	ListActivated(ctx context.Context, page models.Page) ([]models.User, error)

	// Profile returns an activated account with its graph and post counters.
	Profile(ctx context.Context, id int64) (models.Profile, error)
}

// GraphService manages the directed follow graph.
type GraphService interface {
	Follow(ctx context.Context, followerID, followedID int64) (models.EdgeState, error)
	Unfollow(ctx context.Context, followerID, followedID int64) (models.EdgeState, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]int64, error)
	Following(ctx context.Context, userID int64) ([]int64, error)
}

// PostService manages authored posts.
type PostService interface {
	Create(ctx context.Context, ownerID int64, content string) (models.Post, error)
	PostsBy(ctx context.Context, ownerID int64, page models.Page) ([]models.Post, error)
	DeleteAllBy(ctx context.Context, ownerID int64) (int64, error)
}

// FeedService composes the follow graph and posts into a timeline.
type FeedService interface {
	// Feed lazily yields the viewer's own posts and posts of followed
	// accounts, newest first. Every range over the sequence starts a new
	// query, so the sequence is restartable.
	Feed(ctx context.Context, viewerID int64) iter.Seq2[models.Post, error]
	FeedPage(ctx context.Context, viewerID int64, cursor models.FeedCursor, limit int) (models.FeedPage, error)
}

// SessionService is the login/logout/remember contract of the request layer.
type SessionService interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// Remember stores a new remember digest and returns the raw token.
	Remember(ctx context.Context, userID int64) (string, error)

	// Forget clears the remember digest. Forgetting twice is not an error.
	Forget(ctx context.Context, userID int64) error
	AuthenticatedByRemember(user models.User, token string) bool
	ResumeSession(ctx context.Context, req models.RememberRequest) (models.Session, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.VersionResponse
}
