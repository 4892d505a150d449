package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-microblog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts and their credential digests.
type UserRepository interface {
	// CreateUser inserts user and returns it with the assigned id and timestamps.
	// A case-insensitive email collision yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, changes models.UserChanges) (models.User, error)

	// ActivateUser marks the account activated and clears its activation
	// digest. With a non-nil expectedDigest the update only happens while
	// the stored digest still equals it, otherwise [ErrDigestMismatch].
	ActivateUser(ctx context.Context, id int64, expectedDigest *string) (models.User, error)
	SetRememberDigest(ctx context.Context, id int64, digest *string) error
	SetResetDigest(ctx context.Context, id int64, digest string, sentAt time.Time) error

	// ConsumeResetDigest swaps the password digest and clears the reset
	// digest only while the stored reset digest equals expectedDigest.
	ConsumeResetDigest(ctx context.Context, id int64, expectedDigest, passwordDigest string) (models.User, error)
	ClearResetDigest(ctx context.Context, id int64) error
	SetAdmin(ctx context.Context, id int64, admin bool) (models.User, error)
	ListActivatedUsers(ctx context.Context, page models.Page) ([]models.User, error)

	// DeleteUser removes every edge touching the account, its posts and the
	// account row inside one transaction.
	DeleteUser(ctx context.Context, id int64) (models.DeletionReport, error)
}

// RelationshipRepository persists the directed follow graph.
type RelationshipRepository interface {
	// Follow creates the edge and reports whether it did not exist before.
	Follow(ctx context.Context, followerID, followedID int64) (bool, error)
	// Unfollow removes the edge and reports whether it existed.
	Unfollow(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	FollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}

// PostRepository persists posts and answers feed queries.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	PostsByUser(ctx context.Context, userID int64, page models.Page) ([]models.Post, error)
	CountPostsByUser(ctx context.Context, userID int64) (int64, error)
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)

	// Feed returns at most limit posts authored by viewerID or by accounts
	// viewerID follows, strictly older than cursor, newest first.
	Feed(ctx context.Context, viewerID int64, cursor models.FeedCursor, limit uint64) ([]models.Post, error)
}

// ErrorClassificator decides how a driver error should be handled.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsUniqueViolation reports a unique or primary key violation.
	IsUniqueViolation(err error) bool
	// IsForeignKeyViolation reports a foreign key violation.
	IsForeignKeyViolation(err error) bool
}
